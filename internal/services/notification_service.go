package services

import (
	"context"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/repositories"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services/dto"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/pkg/apperrors"
)

type NotificationService interface {
	// ListRecent returns the newest notifications, newest first.
	ListRecent(ctx context.Context, limit int) ([]dto.NotificationResponse, error)
}

type NotificationServiceImpl struct {
	notifications repositories.NotificationRepository
}

func NewNotificationService(notifications repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notifications: notifications}
}

func (s *NotificationServiceImpl) ListRecent(ctx context.Context, limit int) ([]dto.NotificationResponse, error) {
	records, err := s.notifications.FindRecent(limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.NotificationResponse, 0, len(records))
	for i := range records {
		out = append(out, dto.NewNotificationResponse(&records[i]))
	}
	return out, nil
}
