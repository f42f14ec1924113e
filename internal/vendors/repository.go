package vendors

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	// GetBySubaccountCode resolves the vendor behind a gateway
	// settlement, which only carries the subaccount code.
	GetBySubaccountCode(ctx context.Context, code string) (*Vendor, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Vendor, error) {
	var vendor Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("vendor not found")
		}
		return nil, apperrors.Internal("failed to load vendor", err)
	}
	return &vendor, nil
}

func (r *repository) GetBySubaccountCode(ctx context.Context, code string) (*Vendor, error) {
	var vendor Vendor
	err := r.db.WithContext(ctx).Where("subaccount_code = ?", code).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no vendor for subaccount")
		}
		return nil, apperrors.Internal("failed to load vendor", err)
	}
	return &vendor, nil
}
