package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/bookings"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/configuration"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/explorers"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/config"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/vendors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/paystack"
)

type fakePaymentRepo struct {
	existing      *Payment
	upserted      *Payment
	authorization *paystack.InitializeResponse
	confirmations int
}

func (f *fakePaymentRepo) UpsertPendingForBooking(ctx context.Context, candidate *Payment) (*Payment, bool, error) {
	if f.existing != nil {
		if f.existing.Status == StatusSuccess {
			return nil, false, apperrors.Conflict("booking already has a successful payment")
		}
		return f.existing, false, nil
	}
	f.upserted = candidate
	return candidate, true, nil
}

func (f *fakePaymentRepo) SaveAuthorization(ctx context.Context, id uuid.UUID, authorizationURL, accessCode string) error {
	f.authorization = &paystack.InitializeResponse{AuthorizationURL: authorizationURL, AccessCode: accessCode}
	return nil
}

func (f *fakePaymentRepo) GetByReference(ctx context.Context, reference string) (*Payment, error) {
	return nil, apperrors.NotFound("payment not found")
}

func (f *fakePaymentRepo) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	if f.existing != nil {
		return f.existing, nil
	}
	return nil, apperrors.NotFound("payment not found")
}

func (f *fakePaymentRepo) ConfirmCharge(ctx context.Context, reference string, paidAt time.Time, fees FeeBreakdown) (*Payment, bool, error) {
	f.confirmations++
	return &Payment{Reference: reference, Status: StatusSuccess}, true, nil
}

func (f *fakePaymentRepo) MarkStalePendingFailed(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type fakeBookingStore struct {
	booking *bookings.Booking
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, apperrors.NotFound("booking not found")
	}
	return f.booking, nil
}

type fakeVendorStore struct {
	vendor *vendors.Vendor
}

func (f *fakeVendorStore) GetByID(ctx context.Context, id uuid.UUID) (*vendors.Vendor, error) {
	return f.vendor, nil
}

type fakeExplorerStore struct {
	explorer *explorers.Explorer
}

func (f *fakeExplorerStore) GetByID(ctx context.Context, id uuid.UUID) (*explorers.Explorer, error) {
	return f.explorer, nil
}

type fakeConfigStore struct {
	active *configuration.Configuration
}

func (f *fakeConfigStore) GetActive(ctx context.Context) (*configuration.Configuration, error) {
	if f.active == nil {
		return nil, apperrors.NotFound("no active configuration")
	}
	return f.active, nil
}

type fakeGateway struct {
	calls    []paystack.InitializeRequest
	response *paystack.InitializeResponse
	err      error
}

func (f *fakeGateway) Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	resp := *f.response
	resp.Reference = req.Reference
	return &resp, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Gateway: config.GatewayConfig{FeeBearer: paystack.BearerAccount},
		Platform: config.PlatformConfig{
			DefaultCommissionRate: 5,
			Currency:              "NGN",
		},
	}
}

func newTestFixture(booking *bookings.Booking, vendor *vendors.Vendor) (*fakePaymentRepo, *fakeGateway, Service) {
	repo := &fakePaymentRepo{}
	gateway := &fakeGateway{response: &paystack.InitializeResponse{
		AuthorizationURL: "https://checkout.example/abc",
		AccessCode:       "ACCESS_123",
	}}
	svc := NewService(
		repo,
		&fakeBookingStore{booking: booking},
		&fakeVendorStore{vendor: vendor},
		&fakeExplorerStore{explorer: &explorers.Explorer{ID: booking.ExplorerID, Email: "jide@example.com"}},
		&fakeConfigStore{},
		gateway,
		testConfig(),
		logger.GetDefault(),
	)
	return repo, gateway, svc
}

func payableBooking(explorerID uuid.UUID) *bookings.Booking {
	return &bookings.Booking{
		ID:            uuid.New(),
		Code:          "JZ-482913",
		ExplorerID:    explorerID,
		VendorID:      uuid.New(),
		TotalAmount:   100000,
		Status:        bookings.StatusPending,
		PaymentStatus: bookings.PaymentPending,
	}
}

func TestInitiatePaymentSplit(t *testing.T) {
	explorerID := uuid.New()
	booking := payableBooking(explorerID)
	vendor := &vendors.Vendor{
		ID:               booking.VendorID,
		Category:         vendors.CategoryEvents,
		SubaccountCode:   "ACCT_ab12",
		SubaccountActive: true,
	}

	repo, gateway, svc := newTestFixture(booking, vendor)

	resp, err := svc.InitiatePayment(context.Background(), explorerID, InitiatePaymentRequest{
		BookingID: booking.ID.String(),
	})
	require.NoError(t, err)

	// Pending row was prepared before the gateway call
	require.NotNil(t, repo.upserted)
	assert.Equal(t, StatusPending, repo.upserted.Status)
	assert.True(t, repo.upserted.IsSplit)
	assert.Equal(t, "ACCT_ab12", repo.upserted.SubaccountCode)
	assert.Equal(t, 5.0, repo.upserted.CommissionRate)

	require.Len(t, gateway.calls, 1)
	call := gateway.calls[0]
	assert.Equal(t, repo.upserted.Reference, call.Reference)
	assert.Equal(t, int64(100000), call.Amount)
	assert.Equal(t, "jide@example.com", call.Email)
	assert.Equal(t, "ACCT_ab12", call.Subaccount)
	assert.Equal(t, paystack.BearerAccount, call.Bearer)

	assert.Equal(t, "https://checkout.example/abc", resp.AuthorizationURL)
	assert.Equal(t, "ACCESS_123", resp.AccessCode)
	assert.True(t, resp.IsSplitPayment)
	assert.Equal(t, "ACCT_ab12", resp.SubaccountID)
}

func TestInitiatePaymentWithoutSubaccount(t *testing.T) {
	explorerID := uuid.New()
	booking := payableBooking(explorerID)
	vendor := &vendors.Vendor{ID: booking.VendorID, Category: vendors.CategoryMovies}

	repo, gateway, svc := newTestFixture(booking, vendor)

	resp, err := svc.InitiatePayment(context.Background(), explorerID, InitiatePaymentRequest{
		BookingID: booking.ID.String(),
	})
	require.NoError(t, err)

	assert.False(t, repo.upserted.IsSplit)
	assert.Empty(t, gateway.calls[0].Subaccount)
	assert.Empty(t, gateway.calls[0].Bearer)
	assert.False(t, resp.IsSplitPayment)
	assert.Empty(t, resp.SubaccountID)
}

func TestInitiatePaymentReusesStoredAuthorization(t *testing.T) {
	explorerID := uuid.New()
	booking := payableBooking(explorerID)
	vendor := &vendors.Vendor{ID: booking.VendorID, Category: vendors.CategoryEvents}

	repo, gateway, svc := newTestFixture(booking, vendor)
	repo.existing = &Payment{
		ID:               uuid.New(),
		BookingID:        booking.ID,
		Amount:           booking.TotalAmount,
		Currency:         "NGN",
		Status:           StatusPending,
		Reference:        "BKM-1756600000000-AB12CD34",
		AuthorizationURL: "https://checkout.example/stored",
		AccessCode:       "ACCESS_STORED",
	}

	resp, err := svc.InitiatePayment(context.Background(), explorerID, InitiatePaymentRequest{
		BookingID: booking.ID.String(),
	})
	require.NoError(t, err)

	assert.Empty(t, gateway.calls, "stored authorization should skip the gateway")
	assert.Equal(t, "https://checkout.example/stored", resp.AuthorizationURL)
	assert.Equal(t, "BKM-1756600000000-AB12CD34", resp.Reference)
}

func TestInitiatePaymentRejectsPaidBooking(t *testing.T) {
	explorerID := uuid.New()
	booking := payableBooking(explorerID)
	booking.PaymentStatus = bookings.PaymentPaid
	vendor := &vendors.Vendor{ID: booking.VendorID}

	_, gateway, svc := newTestFixture(booking, vendor)

	_, err := svc.InitiatePayment(context.Background(), explorerID, InitiatePaymentRequest{
		BookingID: booking.ID.String(),
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Empty(t, gateway.calls)
}

func TestInitiatePaymentRejectsNonOwner(t *testing.T) {
	booking := payableBooking(uuid.New())
	vendor := &vendors.Vendor{ID: booking.VendorID}

	_, _, svc := newTestFixture(booking, vendor)

	_, err := svc.InitiatePayment(context.Background(), uuid.New(), InitiatePaymentRequest{
		BookingID: booking.ID.String(),
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestInitiatePaymentRejectsCancelledBooking(t *testing.T) {
	explorerID := uuid.New()
	booking := payableBooking(explorerID)
	booking.Status = bookings.StatusCancelled
	vendor := &vendors.Vendor{ID: booking.VendorID}

	_, _, svc := newTestFixture(booking, vendor)

	_, err := svc.InitiatePayment(context.Background(), explorerID, InitiatePaymentRequest{
		BookingID: booking.ID.String(),
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestInitiatePaymentGatewayFailureLeavesPending(t *testing.T) {
	explorerID := uuid.New()
	booking := payableBooking(explorerID)
	vendor := &vendors.Vendor{ID: booking.VendorID}

	repo, gateway, svc := newTestFixture(booking, vendor)
	gateway.err = apperrors.New(apperrors.KindGateway, "gateway unreachable")

	_, err := svc.InitiatePayment(context.Background(), explorerID, InitiatePaymentRequest{
		BookingID: booking.ID.String(),
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindGateway))

	// The pending row survives for a later retry or webhook
	require.NotNil(t, repo.upserted)
	assert.Equal(t, StatusPending, repo.upserted.Status)
	assert.Nil(t, repo.authorization)
}
