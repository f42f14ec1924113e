package explorers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Explorer, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Explorer, error) {
	var explorer Explorer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&explorer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("explorer not found")
		}
		return nil, apperrors.Internal("failed to load explorer", err)
	}
	return &explorer, nil
}
