package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/listings"
)

// Booking is an explorer's request to consume a vendor listing. Rows are
// never hard-deleted; cancellation is a status transition.
type Booking struct {
	ID          uuid.UUID            `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Code        string               `json:"code" gorm:"uniqueIndex;not null;size:10"`
	ExplorerID  uuid.UUID            `json:"explorer_id" gorm:"type:uuid;index;not null"`
	VendorID    uuid.UUID            `json:"vendor_id" gorm:"type:uuid;index;not null"`
	BookingType listings.BookingType `json:"booking_type" gorm:"type:varchar(20);not null"`
	ListingID   uuid.UUID            `json:"listing_id" gorm:"type:uuid;index;not null"`
	// UnitKey selects the concrete unit of a multi-unit listing (the
	// room type id for accommodations); empty for single-unit listings.
	UnitKey  string     `json:"unit_key,omitempty" gorm:"size:40"`
	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
	Guests   int        `json:"guests,omitempty"`
	Quantity int        `json:"quantity" gorm:"not null;default:1"`

	TotalAmount int64  `json:"total_amount" gorm:"not null;check:total_amount >= 0"`
	ServiceFee  int64  `json:"service_fee" gorm:"default:0"`
	CouponCode  string `json:"coupon_code,omitempty" gorm:"size:50"`

	Status           Status       `json:"status" gorm:"type:varchar(20);default:'requested'"`
	PaymentStatus    PaymentState `json:"payment_status" gorm:"type:varchar(20);default:'pending'"`
	PaymentReference string       `json:"payment_reference,omitempty" gorm:"size:64;index"`

	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// IsCancelled reports whether the booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsPaid reports whether the charge for this booking succeeded
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// ReservationSpec rebuilds the listing reservation details held on the
// booking, used when releasing inventory on cancellation.
func (b *Booking) ReservationSpec() listings.ReservationSpec {
	return listings.ReservationSpec{
		UnitKey:  b.UnitKey,
		Quantity: b.Quantity,
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
		Guests:   b.Guests,
	}
}
