package configuration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
)

type Repository interface {
	GetActive(ctx context.Context) (*Configuration, error)
	Create(ctx context.Context, cfg *Configuration) error
	// Activate deactivates the currently active row and activates the
	// given one inside a single transaction, preserving the
	// single-active invariant.
	Activate(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActive(ctx context.Context) (*Configuration, error) {
	var cfg Configuration
	err := r.db.WithContext(ctx).Where("active = ?", true).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no active configuration")
		}
		return nil, apperrors.Internal("failed to load active configuration", err)
	}
	return &cfg, nil
}

func (r *repository) Create(ctx context.Context, cfg *Configuration) error {
	cfg.Active = false
	if err := r.db.WithContext(ctx).Create(cfg).Error; err != nil {
		return apperrors.Internal("failed to create configuration", err)
	}
	return nil
}

func (r *repository) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target Configuration
		if err := tx.Where("id = ?", id).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("configuration not found")
			}
			return apperrors.Internal("failed to load configuration", err)
		}

		if err := tx.Model(&Configuration{}).
			Where("active = ?", true).
			Update("active", false).Error; err != nil {
			return apperrors.Internal("failed to deactivate configuration", err)
		}

		if err := tx.Model(&Configuration{}).
			Where("id = ?", id).
			Update("active", true).Error; err != nil {
			return apperrors.Internal("failed to activate configuration", err)
		}

		return nil
	})
}
