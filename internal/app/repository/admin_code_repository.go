package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/pkg/logger"
)

// ErrCodeInvalid is returned when a confirmation code is unknown or
// already consumed. The caller cannot distinguish the two cases.
var ErrCodeInvalid = errors.New("confirmation code is invalid or already used")

type AdminCodeRepository interface {
	Create(code *model.AdminConfirmationCode) error
	// Consume atomically marks the code used. Unknown and already-used
	// codes both fail with ErrCodeInvalid.
	Consume(code string) error
	IsValid(code string) (bool, error)
}

type adminCodeRepository struct {
	db *gorm.DB
}

func NewAdminCodeRepository(db *gorm.DB) AdminCodeRepository {
	return &adminCodeRepository{db: db}
}

func (r *adminCodeRepository) Create(code *model.AdminConfirmationCode) error {
	logger.Debug("Creating admin confirmation code in database")

	if err := r.db.Create(code).Error; err != nil {
		logger.Error("Failed to create admin confirmation code", err)
		return err
	}
	return nil
}

func (r *adminCodeRepository) Consume(code string) error {
	now := time.Now()

	// Single UPDATE guarded on used=false: two concurrent registrations
	// with the same code cannot both succeed.
	result := r.db.Model(&model.AdminConfirmationCode{}).
		Where("code = ? AND used = ?", code, false).
		Updates(map[string]interface{}{"used": true, "used_at": &now})
	if result.Error != nil {
		logger.Error("Failed to consume admin confirmation code", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		logger.Warn("Admin confirmation code rejected", map[string]interface{}{
			"reason": "unknown or already used",
		})
		return ErrCodeInvalid
	}

	logger.Info("Admin confirmation code consumed")
	return nil
}

func (r *adminCodeRepository) IsValid(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.AdminConfirmationCode{}).
		Where("code = ? AND used = ?", code, false).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check admin confirmation code", err)
		return false, err
	}
	return count > 0, nil
}
