package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/listings"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
)

// codeAttempts bounds the collision retry loop for booking codes.
const codeAttempts = 5

type Repository interface {
	// CreateWithReservation reserves inventory and inserts the booking
	// in one transaction. The whole transaction aborts when the
	// reservation conflicts.
	CreateWithReservation(ctx context.Context, booking *Booking, listing listings.Listing, spec listings.ReservationSpec) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByExplorer(ctx context.Context, explorerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetByVendor(ctx context.Context, vendorID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)

	// ApproveRequested moves a vendor's booking from requested to
	// pending; a zero-row update means it was not in that state.
	ApproveRequested(ctx context.Context, bookingID, vendorID uuid.UUID) error

	// CancelWithRelease marks the booking cancelled and releases its
	// reserved inventory in one transaction.
	CancelWithRelease(ctx context.Context, bookingID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithReservation(ctx context.Context, booking *Booking, listing listings.Listing, spec listings.ReservationSpec) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := listings.Reserve(tx, listing, spec); err != nil {
			return err
		}

		for attempt := 0; attempt < codeAttempts; attempt++ {
			code, err := generateCode(listing.Title())
			if err != nil {
				return apperrors.Internal("failed to generate booking code", err)
			}

			var taken int64
			if err := tx.Model(&Booking{}).Where("code = ?", code).Count(&taken).Error; err != nil {
				return apperrors.Internal("failed to check booking code", err)
			}
			if taken > 0 {
				continue
			}

			booking.Code = code
			if err := tx.Create(booking).Error; err != nil {
				return apperrors.Internal("failed to create booking", err)
			}
			return nil
		}

		return apperrors.Internal("exhausted booking code attempts", nil)
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal("failed to load booking", err)
	}
	return &booking, nil
}

func (r *repository) GetByExplorer(ctx context.Context, explorerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return r.list(ctx, "explorer_id", explorerID, query)
}

func (r *repository) GetByVendor(ctx context.Context, vendorID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return r.list(ctx, "vendor_id", vendorID, query)
}

func (r *repository) list(ctx context.Context, ownerColumn string, ownerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	base := r.db.WithContext(ctx).Model(&Booking{}).Where(ownerColumn+" = ?", ownerID)
	if query.Status != "" {
		base = base.Where("status = ?", query.Status)
	}

	var totalCount int64
	if err := base.Count(&totalCount).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count bookings", err)
	}

	var bookings []Booking
	err := base.
		Order("created_at DESC").
		Offset(query.Offset).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list bookings", err)
	}
	return bookings, totalCount, nil
}

func (r *repository) ApproveRequested(ctx context.Context, bookingID, vendorID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND vendor_id = ? AND status = ?", bookingID, vendorID, StatusRequested).
		Updates(map[string]interface{}{
			"status":     StatusPending,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return apperrors.Internal("failed to approve booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("booking is not awaiting approval")
	}
	return nil
}

func (r *repository) CancelWithRelease(ctx context.Context, bookingID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		if err := tx.Where("id = ?", bookingID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("booking not found")
			}
			return apperrors.Internal("failed to load booking", err)
		}

		now := time.Now()
		res := tx.Model(&Booking{}).
			Where("id = ? AND status <> ?", bookingID, StatusCancelled).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": now,
				"updated_at":   now,
			})
		if res.Error != nil {
			return apperrors.Internal("failed to cancel booking", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("booking is already cancelled")
		}

		listing, err := listings.ResolveTx(tx, booking.BookingType, booking.ListingID)
		if err != nil {
			return err
		}
		return listings.Release(tx, listing, booking.ReservationSpec())
	})
}
