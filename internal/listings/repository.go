package listings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
)

type Repository interface {
	// Resolve loads the listing variant tagged by bookingType. This is
	// the single dispatch point across listing types.
	Resolve(ctx context.Context, bookingType BookingType, id uuid.UUID) (Listing, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Resolve(ctx context.Context, bookingType BookingType, id uuid.UUID) (Listing, error) {
	return ResolveTx(r.db.WithContext(ctx), bookingType, id)
}

// ResolveTx loads a listing variant on an existing transaction handle so
// callers can keep resolution and reservation in one transaction.
func ResolveTx(tx *gorm.DB, bookingType BookingType, id uuid.UUID) (Listing, error) {
	var (
		listing Listing
		err     error
	)

	switch bookingType {
	case TypeEvents:
		var event Event
		err = tx.Where("id = ?", id).First(&event).Error
		listing = &event
	case TypeAccommodations:
		var accommodation Accommodation
		err = tx.Preload("RoomTypes").Where("id = ?", id).First(&accommodation).Error
		listing = &accommodation
	case TypeLeisure:
		var leisure Leisure
		err = tx.Where("id = ?", id).First(&leisure).Error
		listing = &leisure
	case TypeMovies:
		var showtime MovieShowtime
		err = tx.Where("id = ?", id).First(&showtime).Error
		listing = &showtime
	default:
		return nil, apperrors.Validation("unknown booking type")
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("listing not found")
		}
		return nil, apperrors.Internal("failed to load listing", err)
	}
	return listing, nil
}

// Reserve atomically decrements the capacity counter for the unit the
// spec selects. The decrement is a single guarded UPDATE; the counter is
// never read into memory first. A zero-row update means either the row
// vanished or capacity ran out; the follow-up existence check tells the
// two apart.
func Reserve(tx *gorm.DB, listing Listing, spec ReservationSpec) error {
	table, rowID, err := listing.inventoryRow(spec)
	if err != nil {
		return err
	}

	res := tx.Table(table).
		Where("id = ? AND units_available >= ?", rowID, spec.Quantity).
		UpdateColumn("units_available", gorm.Expr("units_available - ?", spec.Quantity))
	if res.Error != nil {
		return apperrors.Internal("failed to reserve inventory", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Table(table).Where("id = ?", rowID).Count(&count).Error; err != nil {
			return apperrors.Internal("failed to check inventory row", err)
		}
		if count == 0 {
			return apperrors.NotFound("listing inventory not found")
		}
		return apperrors.Conflict("selected unit is not available")
	}
	return nil
}

// Release is the compensating operation for Reserve, used when a booking
// is cancelled or times out.
func Release(tx *gorm.DB, listing Listing, spec ReservationSpec) error {
	table, rowID, err := listing.inventoryRow(spec)
	if err != nil {
		return err
	}

	res := tx.Table(table).
		Where("id = ?", rowID).
		UpdateColumn("units_available", gorm.Expr("units_available + ?", spec.Quantity))
	if res.Error != nil {
		return apperrors.Internal("failed to release inventory", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("listing inventory not found")
	}
	return nil
}
