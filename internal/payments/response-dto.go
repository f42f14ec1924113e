package payments

import (
	"time"

	"github.com/google/uuid"
)

// InitiatePaymentResponse hands the explorer off to the gateway checkout.
type InitiatePaymentResponse struct {
	PaymentID        uuid.UUID `json:"payment_id"`
	Reference        string    `json:"reference"`
	AuthorizationURL string    `json:"authorization_url"`
	AccessCode       string    `json:"access_code"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	IsSplitPayment   bool      `json:"is_split_payment"`
	SubaccountID     string    `json:"subaccount_id,omitempty"`
}

// PaymentResponse is the read view of a payment.
type PaymentResponse struct {
	ID               uuid.UUID  `json:"id"`
	BookingID        uuid.UUID  `json:"booking_id"`
	Amount           int64      `json:"amount"`
	Currency         string     `json:"currency"`
	Status           Status     `json:"status"`
	Reference        string     `json:"reference"`
	IsSplit          bool       `json:"is_split"`
	SettlementStatus string     `json:"settlement_status"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (p *Payment) ToResponse() PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		BookingID:        p.BookingID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           p.Status,
		Reference:        p.Reference,
		IsSplit:          p.IsSplit,
		SettlementStatus: string(p.SettlementStatus),
		PaidAt:           p.PaidAt,
		CreatedAt:        p.CreatedAt,
	}
}
