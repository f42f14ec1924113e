package vendors

import (
	"time"

	"github.com/google/uuid"
)

// Category identifies which commission bucket a vendor falls into.
type Category string

const (
	CategoryEvents         Category = "events"
	CategoryAccommodations Category = "accommodations"
	CategoryLeisure        Category = "leisure"
	CategoryMovies         Category = "movies"
)

// IsValid checks if the vendor category is known
func (c Category) IsValid() bool {
	switch c {
	case CategoryEvents, CategoryAccommodations, CategoryLeisure, CategoryMovies:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Vendor is a listing supplier. CommissionRate, when set, overrides the
// platform's category rate. SubaccountCode is the gateway-side payout
// destination used as the split-payment target.
type Vendor struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BusinessName     string    `json:"business_name" gorm:"not null;size:255"`
	Email            string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Category         Category  `json:"category" gorm:"type:varchar(20);not null"`
	CommissionRate   *float64  `json:"commission_rate,omitempty"`
	SubaccountCode   string    `json:"subaccount_code,omitempty" gorm:"size:100"`
	SubaccountActive bool      `json:"subaccount_active" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Vendor
func (Vendor) TableName() string {
	return "vendors"
}

// HasPayoutDestination reports whether split payments can target this vendor.
func (v *Vendor) HasPayoutDestination() bool {
	return v.SubaccountActive && v.SubaccountCode != ""
}
