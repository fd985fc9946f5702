package services

import (
	"context"
	"errors"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/repositories"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services/dto"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/pkg/apperrors"
)

type UserService interface {
	// UpdateTheme always acts on the token subject, never on a client-sent id.
	UpdateTheme(ctx context.Context, userID string, theme string) (*dto.ThemeUpdateResponse, error)
}

type UserServiceImpl struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &UserServiceImpl{users: users}
}

func (s *UserServiceImpl) UpdateTheme(ctx context.Context, userID string, theme string) (*dto.ThemeUpdateResponse, error) {
	t := models.Theme(theme)
	if !t.Valid() {
		return nil, apperrors.ErrInvalidTheme
	}

	user, err := s.users.UpdateTheme(userID, t)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "theme updated", "user_id", userID, "theme", theme)
	return &dto.ThemeUpdateResponse{
		Message: "Theme updated successfully",
		User:    dto.NewUserResponse(user),
	}, nil
}
