package webhooks

import (
	"context"
	"time"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/payments"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/settlements"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
)

// PaymentConfirmer applies verified charge confirmations.
type PaymentConfirmer interface {
	ConfirmCharge(ctx context.Context, reference string, paidAt time.Time, fees payments.FeeBreakdown) (*payments.Payment, bool, error)
}

// SettlementRecorder applies verified settlement outcomes.
type SettlementRecorder interface {
	RecordSuccess(ctx context.Context, event settlements.Event) (*settlements.Settlement, int64, error)
	RecordFailure(ctx context.Context, event settlements.Event) (*settlements.Settlement, error)
}

// Dispatcher emits best-effort notifications; failures never roll back
// the financial write that preceded them.
type Dispatcher interface {
	Emit(ctx context.Context, eventName string, payload map[string]interface{}) error
}

type Service interface {
	// VerifySignature checks the gateway signature header against the
	// raw request body.
	VerifySignature(body []byte, signature string) bool

	// Process dispatches one verified event. A returned error means
	// nothing was committed for it and the gateway should retry.
	Process(ctx context.Context, body []byte) error
}

type service struct {
	secret      string
	payments    PaymentConfirmer
	settlements SettlementRecorder
	dispatcher  Dispatcher
	markers     *Markers
	log         *logger.Logger
}

func NewService(secret string, paymentConfirmer PaymentConfirmer, settlementRecorder SettlementRecorder, dispatcher Dispatcher, markers *Markers, log *logger.Logger) Service {
	return &service{
		secret:      secret,
		payments:    paymentConfirmer,
		settlements: settlementRecorder,
		dispatcher:  dispatcher,
		markers:     markers,
		log:         log,
	}
}

func (s *service) VerifySignature(body []byte, signature string) bool {
	return VerifySignature(s.secret, body, signature)
}

func (s *service) Process(ctx context.Context, body []byte) error {
	event, err := ParseEvent(body)
	if err != nil {
		return err
	}

	s.log.LogWebhookReceived(ctx, event.eventName())

	switch e := event.(type) {
	case ChargeSucceeded:
		return s.handleChargeSucceeded(ctx, e)
	case SettlementSucceeded:
		_, _, err := s.settlements.RecordSuccess(ctx, e.Event)
		return err
	case SettlementFailed:
		_, err := s.settlements.RecordFailure(ctx, e.Event)
		return err
	case TransferEvent:
		// Reserved: payouts are settled via subaccount splits today,
		// so transfer outcomes carry no local state.
		s.log.Info("transfer event acknowledged", "event", e.Name)
		return nil
	case UnknownEvent:
		s.log.Info("unhandled webhook event acknowledged", "event", e.Name)
		return nil
	default:
		return nil
	}
}

func (s *service) handleChargeSucceeded(ctx context.Context, event ChargeSucceeded) error {
	marker := "webhook:charge:" + event.Reference
	if s.markers.Seen(ctx, marker) {
		return nil
	}

	paidAt := event.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	payment, applied, err := s.payments.ConfirmCharge(ctx, event.Reference, paidAt, event.Fees)
	if err != nil {
		// Includes the reference-not-yet-visible race: surface it so
		// the gateway redelivers once the initiation write lands.
		return err
	}

	if applied && s.dispatcher != nil {
		payload := map[string]interface{}{
			"booking_id":  payment.BookingID.String(),
			"explorer_id": payment.ExplorerID.String(),
			"vendor_id":   payment.VendorID.String(),
			"reference":   payment.Reference,
			"amount":      payment.Amount,
			"currency":    payment.Currency,
		}
		if code, ok := payment.Metadata["booking_code"]; ok {
			payload["booking_code"] = code
		}
		if err := s.dispatcher.Emit(ctx, "booking.confirmed", payload); err != nil {
			s.log.WithError(err).Warn("booking confirmation notification failed",
				"reference", payment.Reference)
		}
	}

	s.markers.Mark(ctx, marker)
	return nil
}
