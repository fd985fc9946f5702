package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/pkg/apperrors"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, notificationService: notificationService}
}

// ListRecent handles GET /notifications. An optional limit query param caps
// the result size; the repository default applies when it is absent.
func (h *NotificationHandler) ListRecent(c *gin.Context) {
	if _, ok := h.RequireUserID(c); !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.HandleServiceError(c, apperrors.NewBadRequestError("Field 'limit' must be a positive integer"))
			return
		}
		limit = n
	}

	resp, err := h.notificationService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
