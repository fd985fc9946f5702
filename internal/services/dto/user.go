package dto

import (
	"time"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Theme:     string(user.Theme),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type ThemeUpdateRequest struct {
	Theme string `json:"theme" validate:"required,is-theme"`
}

type ThemeUpdateResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
