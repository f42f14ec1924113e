package settlements

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/payments"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
)

type Repository interface {
	// UpsertAndLinkEligible records a successful settlement and
	// attaches the vendor's successful, still unsettled payments to it
	// in one transaction, so a partially applied webhook never leaves
	// a success settlement without its payments. The set-once filter
	// on settlement_id keeps re-runs from stealing payments already
	// claimed by another batch.
	UpsertAndLinkEligible(ctx context.Context, candidate *Settlement) (*Settlement, int64, error)

	// UpsertAndFailEligible records a failed settlement and flags the
	// vendor's successful unsettled payments in the same transaction
	// so they surface for manual follow-up.
	UpsertAndFailEligible(ctx context.Context, candidate *Settlement) (*Settlement, int64, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Settlement, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, page, limit int) ([]Settlement, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertAndLinkEligible(ctx context.Context, candidate *Settlement) (*Settlement, int64, error) {
	var result *Settlement
	var linked int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settlement, err := findOrCreateTx(tx, candidate)
		if err != nil {
			return err
		}

		res := tx.Model(&payments.Payment{}).
			Where("vendor_id = ? AND status = ? AND settlement_status = ? AND settlement_id IS NULL",
				settlement.VendorID, payments.StatusSuccess, payments.SettlementPending).
			Updates(map[string]interface{}{
				"settlement_id":     settlement.ID,
				"settlement_status": payments.SettlementSettled,
				"updated_at":        time.Now(),
			})
		if res.Error != nil {
			return apperrors.Internal("failed to link payments to settlement", res.Error)
		}

		result = settlement
		linked = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return result, linked, nil
}

func (r *repository) UpsertAndFailEligible(ctx context.Context, candidate *Settlement) (*Settlement, int64, error) {
	var result *Settlement
	var flagged int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settlement, err := findOrCreateTx(tx, candidate)
		if err != nil {
			return err
		}

		res := tx.Model(&payments.Payment{}).
			Where("vendor_id = ? AND status = ? AND settlement_status = ? AND settlement_id IS NULL",
				settlement.VendorID, payments.StatusSuccess, payments.SettlementPending).
			Updates(map[string]interface{}{
				"settlement_status": payments.SettlementFailed,
				"updated_at":        time.Now(),
			})
		if res.Error != nil {
			return apperrors.Internal("failed to mark payments settlement-failed", res.Error)
		}

		result = settlement
		flagged = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return result, flagged, nil
}

// findOrCreateTx returns the settlement with the candidate's gateway
// code, inserting the candidate if absent. Runs inside the caller's
// transaction so the row and its payment links commit together.
func findOrCreateTx(tx *gorm.DB, candidate *Settlement) (*Settlement, error) {
	var existing Settlement
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", candidate.Code).
		First(&existing).Error
	switch {
	case err == nil:
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(candidate).Error; err != nil {
			return nil, apperrors.Internal("failed to create settlement", err)
		}
		return candidate, nil
	default:
		return nil, apperrors.Internal("failed to look up settlement", err)
	}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Settlement, error) {
	var settlement Settlement
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_at ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&settlement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("settlement not found")
		}
		return nil, apperrors.Internal("failed to load settlement", err)
	}
	return &settlement, nil
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uuid.UUID, page, limit int) ([]Settlement, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var settlements []Settlement
	var total int64

	base := r.db.WithContext(ctx).Model(&Settlement{}).Where("vendor_id = ?", vendorID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count settlements", err)
	}

	err := base.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&settlements).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list settlements", err)
	}
	return settlements, total, nil
}
