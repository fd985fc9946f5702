package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
)

type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message,omitempty"`
	Link      string         `json:"link,omitempty"`
	Data      datatypes.JSON `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func NewNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
}
