package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/handlers"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/middleware"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/ws"
)

// RegisterRoutes wires every HTTP and WebSocket route.
func RegisterRoutes(
	r *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", appHandlers.Auth.Signup)
		auth.POST("/login", appHandlers.Auth.Login)
	}

	// Every movie route requires a session; the access policy then narrows
	// what the caller can see to published public rows plus their own.
	movie := r.Group("/movie")
	movie.Use(middleware.AuthMiddleware())
	{
		movie.POST("/create", appHandlers.Movies.Create)
		movie.GET("/list", appHandlers.Movies.List)
		movie.GET("/:id", appHandlers.Movies.GetByID)
		movie.PUT("/:id", appHandlers.Movies.Update)
		movie.DELETE("/:id", appHandlers.Movies.Delete)
	}

	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", appHandlers.Notifications.ListRecent)
	}

	user := r.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.PUT("/theme", appHandlers.Users.UpdateTheme)
	}

	password := r.Group("/password")
	{
		password.POST("/send", appHandlers.PasswordReset.SendCode)
		password.GET("/validate", appHandlers.PasswordReset.ValidateCode)
		password.POST("/reset", appHandlers.PasswordReset.ResetPassword)
	}

	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws registered")

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
