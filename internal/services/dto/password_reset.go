package dto

type SendResetCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ValidateResetCodeRequest struct {
	Email string `form:"email" json:"email" validate:"required,email"`
	Code  string `form:"code" json:"code" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
