package handlers

import (
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/validator"
)

// AppHandlers aggregates every HTTP handler group.
type AppHandlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Movies        *MovieHandler
	Notifications *NotificationHandler
	PasswordReset *PasswordResetHandler
}

func NewAppHandlers(v *validator.Validator, svc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		Auth:          NewAuthHandler(base, svc.Auth),
		Users:         NewUserHandler(base, svc.Users),
		Movies:        NewMovieHandler(base, svc.Movies),
		Notifications: NewNotificationHandler(base, svc.Notifications),
		PasswordReset: NewPasswordResetHandler(base, svc.PasswordReset),
	}
}
