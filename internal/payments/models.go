package payments

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks the gateway charge lifecycle.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// IsValid checks if the payment status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// SettlementState tracks whether a successful payment has been covered
// by a gateway settlement batch.
type SettlementState string

const (
	SettlementPending SettlementState = "pending"
	SettlementSettled SettlementState = "settled"
	SettlementFailed  SettlementState = "failed"
)

func (s SettlementState) String() string {
	return string(s)
}

// Payment is one gateway charge attempt for a booking. A booking holds
// at most one non-failed payment at a time, and at most one payment per
// booking ever reaches success. SettlementID is written at most once,
// by the reconciler (first writer wins).
type Payment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID  uuid.UUID `json:"booking_id" gorm:"type:uuid;index;not null"`
	ExplorerID uuid.UUID `json:"explorer_id" gorm:"type:uuid;index;not null"`
	VendorID   uuid.UUID `json:"vendor_id" gorm:"type:uuid;index;not null"`

	Amount   int64  `json:"amount" gorm:"not null;check:amount >= 0"`
	Currency string `json:"currency" gorm:"type:varchar(3);default:'NGN'"`
	Status   Status `json:"status" gorm:"type:varchar(20);default:'pending'"`

	// Reference is the globally unique id the gateway echoes back in
	// webhooks; generated before the gateway call so an early webhook
	// always finds a row.
	Reference        string `json:"reference" gorm:"uniqueIndex;not null;size:64"`
	AuthorizationURL string `json:"authorization_url,omitempty" gorm:"size:500"`
	AccessCode       string `json:"access_code,omitempty" gorm:"size:100"`

	// Split configuration captured at initiation
	IsSplit        bool    `json:"is_split" gorm:"default:false"`
	SubaccountCode string  `json:"subaccount_code,omitempty" gorm:"size:100"`
	CommissionRate float64 `json:"commission_rate" gorm:"default:0"`
	FeeBearer      string  `json:"fee_bearer,omitempty" gorm:"type:varchar(20)"`

	// Fee breakdown, populated only when the charge succeeds
	VendorAmount   *int64 `json:"vendor_amount,omitempty"`
	PlatformAmount *int64 `json:"platform_amount,omitempty"`
	GatewayFees    *int64 `json:"gateway_fees,omitempty"`

	SettlementID     *uuid.UUID      `json:"settlement_id,omitempty" gorm:"type:uuid;index"`
	SettlementStatus SettlementState `json:"settlement_status" gorm:"type:varchar(20);default:'pending'"`

	Metadata map[string]interface{} `json:"metadata,omitempty" gorm:"serializer:json"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// IsPending reports whether the charge is still awaiting confirmation
func (p *Payment) IsPending() bool {
	return p.Status == StatusPending
}

// IsSuccessful reports whether the charge went through
func (p *Payment) IsSuccessful() bool {
	return p.Status == StatusSuccess
}

// EligibleForSettlement reports whether the reconciler may link this
// payment to a settlement batch.
func (p *Payment) EligibleForSettlement() bool {
	return p.Status == StatusSuccess && p.SettlementStatus == SettlementPending && p.SettlementID == nil
}
