package webhooks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/payments"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/settlements"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
)

type fakeConfirmer struct {
	payment    *payments.Payment
	applied    bool
	err        error
	references []string
	fees       []payments.FeeBreakdown
}

func (f *fakeConfirmer) ConfirmCharge(ctx context.Context, reference string, paidAt time.Time, fees payments.FeeBreakdown) (*payments.Payment, bool, error) {
	f.references = append(f.references, reference)
	f.fees = append(f.fees, fees)
	if f.err != nil {
		return nil, false, f.err
	}
	return f.payment, f.applied, nil
}

type fakeRecorder struct {
	successes []settlements.Event
	failures  []settlements.Event
}

func (f *fakeRecorder) RecordSuccess(ctx context.Context, event settlements.Event) (*settlements.Settlement, int64, error) {
	f.successes = append(f.successes, event)
	return &settlements.Settlement{Code: event.Code}, 2, nil
}

func (f *fakeRecorder) RecordFailure(ctx context.Context, event settlements.Event) (*settlements.Settlement, error) {
	f.failures = append(f.failures, event)
	return &settlements.Settlement{Code: event.Code, Status: settlements.StatusFailed}, nil
}

type fakeEmitter struct {
	events   []string
	payloads []map[string]interface{}
	err      error
}

func (f *fakeEmitter) Emit(ctx context.Context, eventName string, payload map[string]interface{}) error {
	f.events = append(f.events, eventName)
	f.payloads = append(f.payloads, payload)
	return f.err
}

func newWebhookService(confirmer *fakeConfirmer, recorder *fakeRecorder, emitter *fakeEmitter) Service {
	return NewService("sk_test_secret", confirmer, recorder, emitter, nil, logger.GetDefault())
}

func TestProcessChargeSuccess(t *testing.T) {
	payment := &payments.Payment{
		BookingID:  uuid.New(),
		ExplorerID: uuid.New(),
		VendorID:   uuid.New(),
		Reference:  "BKM-1-AB12CD34",
		Amount:     100000,
		Currency:   "NGN",
		Metadata:   map[string]interface{}{"booking_code": "JZ-482913"},
	}
	confirmer := &fakeConfirmer{payment: payment, applied: true}
	emitter := &fakeEmitter{}
	svc := newWebhookService(confirmer, &fakeRecorder{}, emitter)

	body := []byte(`{"event":"charge.success","data":{"reference":"BKM-1-AB12CD34","amount":100000,"fees":1500}}`)
	err := svc.Process(context.Background(), body)
	require.NoError(t, err)

	assert.Equal(t, []string{"BKM-1-AB12CD34"}, confirmer.references)
	require.Equal(t, []string{"booking.confirmed"}, emitter.events)
	assert.Equal(t, "JZ-482913", emitter.payloads[0]["booking_code"])
}

func TestProcessChargeRedeliveryDoesNotNotify(t *testing.T) {
	confirmer := &fakeConfirmer{payment: &payments.Payment{Reference: "BKM-1-AB"}, applied: false}
	emitter := &fakeEmitter{}
	svc := newWebhookService(confirmer, &fakeRecorder{}, emitter)

	body := []byte(`{"event":"charge.success","data":{"reference":"BKM-1-AB"}}`)
	require.NoError(t, svc.Process(context.Background(), body))

	assert.Empty(t, emitter.events, "re-delivered charge should not re-notify")
}

func TestProcessChargeUnknownReferenceIsRetryable(t *testing.T) {
	confirmer := &fakeConfirmer{err: apperrors.NotFound("payment not found for reference")}
	svc := newWebhookService(confirmer, &fakeRecorder{}, &fakeEmitter{})

	body := []byte(`{"event":"charge.success","data":{"reference":"BKM-9-ZZ"}}`)
	err := svc.Process(context.Background(), body)
	require.Error(t, err, "unknown reference must propagate so the gateway retries")
}

func TestProcessChargeNotificationFailureIsSwallowed(t *testing.T) {
	confirmer := &fakeConfirmer{payment: &payments.Payment{Reference: "BKM-1-AB"}, applied: true}
	emitter := &fakeEmitter{err: apperrors.Internal("broker down", nil)}
	svc := newWebhookService(confirmer, &fakeRecorder{}, emitter)

	body := []byte(`{"event":"charge.success","data":{"reference":"BKM-1-AB"}}`)
	assert.NoError(t, svc.Process(context.Background(), body))
}

func TestProcessSettlementEvents(t *testing.T) {
	recorder := &fakeRecorder{}
	svc := newWebhookService(&fakeConfirmer{}, recorder, &fakeEmitter{})

	success := []byte(`{"event":"settlement.success","data":{"id":123,"total_amount":500000,"subaccount":{"subaccount_code":"ACCT_a"}}}`)
	require.NoError(t, svc.Process(context.Background(), success))
	require.Len(t, recorder.successes, 1)
	assert.Equal(t, "123", recorder.successes[0].Code)

	failed := []byte(`{"event":"settlement.failed","data":{"id":124,"subaccount":{"subaccount_code":"ACCT_a"}}}`)
	require.NoError(t, svc.Process(context.Background(), failed))
	require.Len(t, recorder.failures, 1)
	assert.Equal(t, "124", recorder.failures[0].Code)
}

func TestProcessTransferAndUnknownAreNoOps(t *testing.T) {
	confirmer := &fakeConfirmer{}
	recorder := &fakeRecorder{}
	svc := newWebhookService(confirmer, recorder, &fakeEmitter{})

	assert.NoError(t, svc.Process(context.Background(), []byte(`{"event":"transfer.failed","data":{}}`)))
	assert.NoError(t, svc.Process(context.Background(), []byte(`{"event":"invoice.update","data":{}}`)))

	assert.Empty(t, confirmer.references)
	assert.Empty(t, recorder.successes)
	assert.Empty(t, recorder.failures)
}
