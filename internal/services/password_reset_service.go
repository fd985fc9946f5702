package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/auth"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/mailer"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/repositories"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services/dto"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/pkg/apperrors"
)

// Reset codes live for ten minutes from issuance.
const resetCodeTTL = 10 * time.Minute

type PasswordResetService interface {
	// SendResetCode issues a fresh 6-digit code for the account, replacing
	// any previous one, and emails it to the address.
	SendResetCode(ctx context.Context, email string) (*dto.MessageResponse, error)

	// ValidateResetCode checks the code without consuming it.
	ValidateResetCode(ctx context.Context, email, code string) (*dto.MessageResponse, error)

	// ResetPassword consumes the code and replaces the account password.
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.MessageResponse, error)
}

type PasswordResetServiceImpl struct {
	users  repositories.UserRepository
	resets repositories.PasswordResetRepository
	mail   mailer.Mailer
}

func NewPasswordResetService(
	users repositories.UserRepository,
	resets repositories.PasswordResetRepository,
	mail mailer.Mailer,
) PasswordResetService {
	return &PasswordResetServiceImpl{users: users, resets: resets, mail: mail}
}

func (s *PasswordResetServiceImpl) SendResetCode(ctx context.Context, email string) (*dto.MessageResponse, error) {
	if _, err := s.users.FindByEmail(email); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	code, err := generateResetCode()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.resets.Upsert(email, code, time.Now().Add(resetCodeTTL)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	msg, err := mailer.ResetCodeEmail(email, code)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.mail.Send(msg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "password_reset", "Failed to send reset code email", http.StatusInternalServerError)
	}

	logger.CtxInfo(ctx, "reset code sent", "email", email)
	return &dto.MessageResponse{Message: "Reset code sent"}, nil
}

func (s *PasswordResetServiceImpl) ValidateResetCode(ctx context.Context, email, code string) (*dto.MessageResponse, error) {
	record, err := s.resets.FindActiveByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrResetNotFound) {
			return nil, apperrors.ErrResetCodeNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if record.Code != code {
		return nil, apperrors.ErrResetCodeMismatch
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, apperrors.ErrResetCodeExpired
	}

	return &dto.MessageResponse{Message: "Reset code is valid"}, nil
}

func (s *PasswordResetServiceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	record, err := s.resets.FindActiveByEmailAndCode(req.Email, req.Code)
	if err != nil {
		if errors.Is(err, repositories.ErrResetNotFound) {
			return nil, apperrors.ErrResetCodeInvalid
		}
		return nil, apperrors.InternalError(err)
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, apperrors.ErrResetCodeExpired
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.users.UpdatePasswordByEmail(req.Email, hash); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Single use: a consumed code never validates again.
	if err := s.resets.MarkUsed(record.ID); err != nil {
		if errors.Is(err, repositories.ErrResetNotFound) {
			return nil, apperrors.ErrResetCodeInvalid
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password reset completed", "email", req.Email)
	return &dto.MessageResponse{Message: "Password updated successfully"}, nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
