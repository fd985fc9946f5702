package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/models"
)

var ErrResetNotFound = errors.New("password reset record not found")

type PasswordResetRepository interface {
	// Upsert overwrites the record for the email: new code, new expiry,
	// used=false. One active record per email.
	Upsert(email, code string, expiresAt time.Time) error

	// FindActiveByEmail returns the unused record for the email.
	FindActiveByEmail(email string) (*models.PasswordReset, error)

	// FindActiveByEmailAndCode returns the unused record matching both.
	FindActiveByEmailAndCode(email, code string) (*models.PasswordReset, error)

	// MarkUsed consumes the record.
	MarkUsed(id string) error

	// DeleteDead purges used records and records that expired before the
	// given moment.
	DeleteDead(before time.Time) (int64, error)
}

type PasswordResetRepositoryImpl struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &PasswordResetRepositoryImpl{db: db}
}

func (r *PasswordResetRepositoryImpl) Upsert(email, code string, expiresAt time.Time) error {
	record := models.PasswordReset{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		Used:      false,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "used", "updated_at"}),
	}).Create(&record).Error
}

func (r *PasswordResetRepositoryImpl) FindActiveByEmail(email string) (*models.PasswordReset, error) {
	var record models.PasswordReset
	err := r.db.First(&record, "email = ? AND used = ?", email, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PasswordResetRepositoryImpl) FindActiveByEmailAndCode(email, code string) (*models.PasswordReset, error) {
	var record models.PasswordReset
	err := r.db.First(&record, "email = ? AND code = ? AND used = ?", email, code, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PasswordResetRepositoryImpl) MarkUsed(id string) error {
	result := r.db.Model(&models.PasswordReset{}).Where("id = ?", id).Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResetNotFound
	}
	return nil
}

func (r *PasswordResetRepositoryImpl) DeleteDead(before time.Time) (int64, error) {
	result := r.db.Where("used = ? OR expires_at < ?", true, before).Delete(&models.PasswordReset{})
	return result.RowsAffected, result.Error
}
