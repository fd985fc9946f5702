package services

import (
	"context"
	"errors"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/auth"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/repositories"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services/dto"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/pkg/apperrors"
)

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) AuthService {
	return &AuthServiceImpl{users: users}
}

func (s *AuthServiceImpl) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if req.Theme != "" {
		user.Theme = models.Theme(req.Theme)
	}

	if err := s.users.Create(user); err != nil {
		// A concurrent signup can still hit the unique index.
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.SignSession(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user signed up", "user_id", user.ID)
	return &dto.AuthResponse{User: dto.NewUserResponse(user), Token: token}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Same answer as a bad password; no account probing.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.SignSession(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return &dto.AuthResponse{User: dto.NewUserResponse(user), Token: token}, nil
}
