package settlements

import (
	"time"

	"github.com/google/uuid"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/payments"
)

// Status mirrors the gateway settlement outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

// Settlement is one gateway settlement batch for a vendor. Code is the
// gateway's settlement id, so redelivered settlement webhooks converge
// on the same row instead of creating duplicates.
type Settlement struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Code     string    `json:"code" gorm:"uniqueIndex;not null;size:64"`
	VendorID uuid.UUID `json:"vendor_id" gorm:"type:uuid;index;not null"`

	SubaccountCode string `json:"subaccount_code" gorm:"size:100"`
	TotalAmount    int64  `json:"total_amount" gorm:"not null;check:total_amount >= 0"`
	Currency       string `json:"currency" gorm:"type:varchar(3);default:'NGN'"`
	Status         Status `json:"status" gorm:"type:varchar(20);not null"`

	BankName      string `json:"bank_name,omitempty" gorm:"size:100"`
	AccountNumber string `json:"account_number,omitempty" gorm:"size:20"`

	SettledAt *time.Time `json:"settled_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Payments covered by this batch, linked by the reconciler.
	Payments []payments.Payment `json:"payments,omitempty" gorm:"foreignKey:SettlementID"`
}

// TableName sets the table name for Settlement
func (Settlement) TableName() string {
	return "settlements"
}

// Event is a gateway settlement notification reduced to the fields the
// reconciler acts on.
type Event struct {
	Code           string
	SubaccountCode string
	TotalAmount    int64
	Currency       string
	EffectiveAt    *time.Time
	BankName       string
	AccountNumber  string
}
