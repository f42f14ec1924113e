package webhooks

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/payments"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/settlements"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
)

// Event is one parsed gateway notification. The raw payload is decoded
// exactly once, at the boundary, into one of the variants below;
// everything downstream switches on the concrete type.
type Event interface {
	eventName() string
}

// ChargeSucceeded confirms a charge for a payment reference.
type ChargeSucceeded struct {
	Reference string
	Amount    int64
	PaidAt    time.Time
	Fees      payments.FeeBreakdown
}

// SettlementSucceeded reports a completed settlement batch.
type SettlementSucceeded struct {
	settlements.Event
}

// SettlementFailed reports a settlement batch the gateway could not pay out.
type SettlementFailed struct {
	settlements.Event
}

// TransferEvent covers transfer.success / transfer.failed / transfer.reversed.
// No local state depends on transfers yet; the variant exists so a
// future payout policy has somewhere to hang.
type TransferEvent struct {
	Name string
}

// UnknownEvent is any event name this service does not handle. It is
// acknowledged so the gateway stops retrying.
type UnknownEvent struct {
	Name string
}

func (ChargeSucceeded) eventName() string     { return "charge.success" }
func (SettlementSucceeded) eventName() string { return "settlement.success" }
func (SettlementFailed) eventName() string    { return "settlement.failed" }
func (e TransferEvent) eventName() string     { return e.Name }
func (e UnknownEvent) eventName() string      { return e.Name }

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type chargePayload struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	PaidAt    string `json:"paid_at"`
	Fees      int64  `json:"fees"`
	FeesSplit *struct {
		Paystack    int64 `json:"paystack"`
		Integration int64 `json:"integration"`
		Subaccount  int64 `json:"subaccount"`
	} `json:"fees_split"`
}

type settlementPayload struct {
	ID          json.Number `json:"id"`
	TotalAmount int64       `json:"total_amount"`
	Currency    string      `json:"currency"`
	EffectiveAt string      `json:"effective_at"`
	Subaccount  struct {
		SubaccountCode string `json:"subaccount_code"`
		SettlementBank string `json:"settlement_bank"`
		AccountNumber  string `json:"account_number"`
	} `json:"subaccount"`
}

// ParseEvent decodes a verified webhook body into its typed variant.
func ParseEvent(body []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apperrors.Validation("malformed webhook body")
	}

	switch {
	case env.Event == "charge.success":
		var data chargePayload
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, apperrors.Validation("malformed charge payload")
		}
		if data.Reference == "" {
			return nil, apperrors.Validation("charge payload missing reference")
		}
		event := ChargeSucceeded{
			Reference: data.Reference,
			Amount:    data.Amount,
			PaidAt:    parseGatewayTime(data.PaidAt),
			Fees:      payments.FeeBreakdown{GatewayFees: data.Fees},
		}
		if data.FeesSplit != nil {
			event.Fees.VendorAmount = data.FeesSplit.Subaccount
			event.Fees.PlatformAmount = data.FeesSplit.Integration
			event.Fees.GatewayFees = data.FeesSplit.Paystack
		}
		return event, nil

	case env.Event == "settlement.success" || env.Event == "settlement.failed":
		var data settlementPayload
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, apperrors.Validation("malformed settlement payload")
		}
		if data.ID.String() == "" {
			return nil, apperrors.Validation("settlement payload missing id")
		}
		settlement := settlements.Event{
			Code:           data.ID.String(),
			SubaccountCode: data.Subaccount.SubaccountCode,
			TotalAmount:    data.TotalAmount,
			Currency:       data.Currency,
			BankName:       data.Subaccount.SettlementBank,
			AccountNumber:  data.Subaccount.AccountNumber,
		}
		if t := parseGatewayTime(data.EffectiveAt); !t.IsZero() {
			settlement.EffectiveAt = &t
		}
		if env.Event == "settlement.success" {
			return SettlementSucceeded{Event: settlement}, nil
		}
		return SettlementFailed{Event: settlement}, nil

	case strings.HasPrefix(env.Event, "transfer."):
		return TransferEvent{Name: env.Event}, nil

	default:
		return UnknownEvent{Name: env.Event}, nil
	}
}

// parseGatewayTime handles the timestamp shapes Paystack sends; a zero
// time means the field was absent or unreadable.
func parseGatewayTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
