package services

import (
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/mailer"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/repositories"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/scheduler"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/storage"
)

// Dependencies is everything the service layer is built from.
type Dependencies struct {
	Users         repositories.UserRepository
	Movies        repositories.MovieRepository
	Notifications repositories.NotificationRepository
	Resets        repositories.PasswordResetRepository

	Storage     storage.Storage
	Scheduler   scheduler.Scheduler
	Mailer      mailer.Mailer
	Broadcaster Broadcaster
}

// ServiceContainer aggregates all application services.
type ServiceContainer struct {
	Auth          AuthService
	Users         UserService
	Movies        MovieService
	Notifications NotificationService
	PasswordReset PasswordResetService
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	return &ServiceContainer{
		Auth:          NewAuthService(deps.Users),
		Users:         NewUserService(deps.Users),
		Movies:        NewMovieService(deps.Movies, deps.Users, deps.Notifications, deps.Storage, deps.Scheduler, deps.Broadcaster),
		Notifications: NewNotificationService(deps.Notifications),
		PasswordReset: NewPasswordResetService(deps.Users, deps.Resets, deps.Mailer),
	}
}
