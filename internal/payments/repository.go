package payments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/bookings"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
)

// FeeBreakdown is the money split recorded when a charge succeeds.
type FeeBreakdown struct {
	VendorAmount   int64
	PlatformAmount int64
	GatewayFees    int64
}

type Repository interface {
	// UpsertPendingForBooking returns the single non-failed payment row
	// for the booking, creating it when absent. An existing successful
	// payment is a conflict; an existing pending one is reused so
	// initiation stays retry-safe.
	UpsertPendingForBooking(ctx context.Context, candidate *Payment) (*Payment, bool, error)

	// SaveAuthorization stores the gateway checkout handles after a
	// successful initialize call.
	SaveAuthorization(ctx context.Context, id uuid.UUID, authorizationURL, accessCode string) error

	GetByReference(ctx context.Context, reference string) (*Payment, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error)

	// ConfirmCharge applies a charge-success webhook: payment to
	// success with fees and paidAt, booking to confirmed/paid, one
	// transaction. Re-delivery of an already-confirmed charge is a
	// no-op; the second return reports whether this call applied it.
	ConfirmCharge(ctx context.Context, reference string, paidAt time.Time, fees FeeBreakdown) (*Payment, bool, error)

	// MarkStalePendingFailed fails pending payments initiated before
	// the cutoff that never received a webhook.
	MarkStalePendingFailed(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertPendingForBooking(ctx context.Context, candidate *Payment) (*Payment, bool, error) {
	var result *Payment
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Payment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_id = ? AND status <> ?", candidate.BookingID, StatusFailed).
			First(&existing).Error
		switch {
		case err == nil:
			if existing.Status == StatusSuccess {
				return apperrors.Conflict("booking already has a successful payment")
			}
			result = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			// fall through to create
		default:
			return apperrors.Internal("failed to look up payment", err)
		}

		if err := tx.Create(candidate).Error; err != nil {
			return createPaymentError(err)
		}

		// Keep the booking pointing at its live gateway reference.
		if err := tx.Model(&bookings.Booking{}).
			Where("id = ?", candidate.BookingID).
			Update("payment_reference", candidate.Reference).Error; err != nil {
			return apperrors.Internal("failed to record payment reference", err)
		}

		result = candidate
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

// createPaymentError classifies insert failures. Two concurrent first
// initiations can both miss the locked select (FOR UPDATE on an empty
// result locks nothing) and race to insert; the partial unique index
// on live payments stops the loser, who should see the same conflict
// the reuse path reports so a retry picks up the winner's row.
func createPaymentError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("payment initiation already in progress for this booking")
	}
	return apperrors.Internal("failed to create payment", err)
}

func (r *repository) SaveAuthorization(ctx context.Context, id uuid.UUID, authorizationURL, accessCode string) error {
	err := r.db.WithContext(ctx).
		Model(&Payment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"authorization_url": authorizationURL,
			"access_code":       accessCode,
			"updated_at":        time.Now(),
		}).Error
	if err != nil {
		return apperrors.Internal("failed to save authorization", err)
	}
	return nil
}

func (r *repository) GetByReference(ctx context.Context, reference string) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment not found")
		}
		return nil, apperrors.Internal("failed to load payment", err)
	}
	return &payment, nil
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status <> ?", bookingID, StatusFailed).
		Order("created_at DESC").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment not found")
		}
		return nil, apperrors.Internal("failed to load payment", err)
	}
	return &payment, nil
}

func (r *repository) ConfirmCharge(ctx context.Context, reference string, paidAt time.Time, fees FeeBreakdown) (*Payment, bool, error) {
	var payment Payment
	applied := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reference = ?", reference).
			First(&payment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The initiation insert may still be in flight; the
				// gateway retries on a non-2xx.
				return apperrors.NotFound("payment not found for reference")
			}
			return apperrors.Internal("failed to load payment", err)
		}

		if payment.Status == StatusSuccess {
			return nil // re-delivered webhook, nothing to do
		}

		if fees.VendorAmount == 0 && fees.PlatformAmount == 0 {
			fees.VendorAmount, fees.PlatformAmount = ComputeFeeBreakdown(
				payment.Amount, payment.CommissionRate, fees.GatewayFees, payment.FeeBearer)
		}

		now := time.Now()
		err = tx.Model(&Payment{}).
			Where("id = ?", payment.ID).
			Updates(map[string]interface{}{
				"status":          StatusSuccess,
				"paid_at":         paidAt,
				"vendor_amount":   fees.VendorAmount,
				"platform_amount": fees.PlatformAmount,
				"gateway_fees":    fees.GatewayFees,
				"updated_at":      now,
			}).Error
		if err != nil {
			return apperrors.Internal("failed to confirm payment", err)
		}

		err = tx.Model(&bookings.Booking{}).
			Where("id = ?", payment.BookingID).
			Updates(map[string]interface{}{
				"status":         bookings.StatusConfirmed,
				"payment_status": bookings.PaymentPaid,
				"updated_at":     now,
			}).Error
		if err != nil {
			return apperrors.Internal("failed to confirm booking", err)
		}

		payment.Status = StatusSuccess
		payment.PaidAt = &paidAt
		payment.VendorAmount = &fees.VendorAmount
		payment.PlatformAmount = &fees.PlatformAmount
		payment.GatewayFees = &fees.GatewayFees
		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &payment, applied, nil
}

func (r *repository) MarkStalePendingFailed(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Payment{}).
		Where("status = ? AND created_at < ?", StatusPending, cutoff).
		Updates(map[string]interface{}{
			"status":     StatusFailed,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, apperrors.Internal("failed to expire pending payments", res.Error)
	}
	return res.RowsAffected, nil
}
