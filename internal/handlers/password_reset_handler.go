package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services/dto"
)

type PasswordResetHandler struct {
	*BaseHandler
	resetService services.PasswordResetService
}

func NewPasswordResetHandler(base *BaseHandler, resetService services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{BaseHandler: base, resetService: resetService}
}

// SendCode handles POST /password/send.
func (h *PasswordResetHandler) SendCode(c *gin.Context) {
	var req dto.SendResetCodeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.resetService.SendResetCode(c.Request.Context(), req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ValidateCode handles GET /password/validate?email=...&code=... without
// consuming the code.
func (h *PasswordResetHandler) ValidateCode(c *gin.Context) {
	var req dto.ValidateResetCodeRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.resetService.ValidateResetCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResetPassword handles POST /password/reset.
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.resetService.ResetPassword(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
