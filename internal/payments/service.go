package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/bookings"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/configuration"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/explorers"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/config"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/vendors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/paystack"
)

// BookingStore is the slice of the bookings module this service needs.
type BookingStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
}

// VendorStore resolves the vendor owning a booking's listing.
type VendorStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*vendors.Vendor, error)
}

// ExplorerStore resolves the paying explorer for the gateway email.
type ExplorerStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*explorers.Explorer, error)
}

// ConfigStore exposes the active commission configuration.
type ConfigStore interface {
	GetActive(ctx context.Context) (*configuration.Configuration, error)
}

// Gateway is the outbound payment gateway surface.
type Gateway interface {
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResponse, error)
}

type Service interface {
	// InitiatePayment creates (or resumes) the gateway checkout for a
	// booking. Calling it again for the same booking before the charge
	// lands returns the stored authorization instead of creating a
	// second transaction.
	InitiatePayment(ctx context.Context, explorerID uuid.UUID, req InitiatePaymentRequest) (*InitiatePaymentResponse, error)

	// GetPaymentForBooking returns the live payment for a booking the
	// caller owns (as explorer or vendor).
	GetPaymentForBooking(ctx context.Context, callerID, bookingID uuid.UUID) (*PaymentResponse, error)

	// ConfirmCharge applies a verified charge-success event; the bool
	// reports whether this delivery applied it (false on re-delivery).
	ConfirmCharge(ctx context.Context, reference string, paidAt time.Time, fees FeeBreakdown) (*Payment, bool, error)
}

type service struct {
	repo      Repository
	bookings  BookingStore
	vendors   VendorStore
	explorers ExplorerStore
	configs   ConfigStore
	gateway   Gateway
	cfg       *config.Config
	log       *logger.Logger
}

func NewService(repo Repository, bookingStore BookingStore, vendorStore VendorStore, explorerStore ExplorerStore, configStore ConfigStore, gateway Gateway, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		bookings:  bookingStore,
		vendors:   vendorStore,
		explorers: explorerStore,
		configs:   configStore,
		gateway:   gateway,
		cfg:       cfg,
		log:       log,
	}
}

func (s *service) InitiatePayment(ctx context.Context, explorerID uuid.UUID, req InitiatePaymentRequest) (*InitiatePaymentResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperrors.Validation("invalid booking id")
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ExplorerID != explorerID {
		return nil, apperrors.NotFound("booking not found")
	}
	if !booking.Status.IsPayable() {
		return nil, apperrors.Conflict("booking is not payable in its current status")
	}
	if booking.PaymentStatus == bookings.PaymentPaid {
		return nil, apperrors.Conflict("booking is already paid")
	}
	if booking.TotalAmount <= 0 {
		return nil, apperrors.Validation("booking amount must be positive")
	}

	explorer, err := s.explorers.GetByID(ctx, booking.ExplorerID)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendors.GetByID(ctx, booking.VendorID)
	if err != nil {
		return nil, err
	}

	active, err := s.configs.GetActive(ctx)
	if err != nil && !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, err
	}
	rate := configuration.ResolveCommission(vendor, active, s.cfg.Platform.DefaultCommissionRate)

	candidate := &Payment{
		ID:         uuid.New(),
		BookingID:  booking.ID,
		ExplorerID: booking.ExplorerID,
		VendorID:   booking.VendorID,
		Amount:     booking.TotalAmount,
		Currency:   s.cfg.Platform.Currency,
		Status:     StatusPending,
		Reference:  generateReference(),
		Metadata: map[string]interface{}{
			"booking_code": booking.Code,
			"booking_type": booking.BookingType,
		},
	}
	if vendor.HasPayoutDestination() {
		candidate.IsSplit = true
		candidate.SubaccountCode = vendor.SubaccountCode
		candidate.CommissionRate = rate
		candidate.FeeBearer = s.cfg.Gateway.FeeBearer
	} else {
		// No payout destination: the full amount lands on the platform
		// account and payout happens out of band.
		candidate.CommissionRate = rate
		candidate.FeeBearer = paystack.BearerAccount
	}

	payment, created, err := s.repo.UpsertPendingForBooking(ctx, candidate)
	if err != nil {
		return nil, err
	}

	// A reused pending payment that already holds its checkout handles
	// does not need another gateway round trip.
	if !created && payment.AccessCode != "" {
		return &InitiatePaymentResponse{
			PaymentID:        payment.ID,
			Reference:        payment.Reference,
			AuthorizationURL: payment.AuthorizationURL,
			AccessCode:       payment.AccessCode,
			Amount:           payment.Amount,
			Currency:         payment.Currency,
			IsSplitPayment:   payment.IsSplit,
			SubaccountID:     payment.SubaccountCode,
		}, nil
	}

	initReq := paystack.InitializeRequest{
		Reference:   payment.Reference,
		Amount:      payment.Amount,
		Email:       explorer.Email,
		Currency:    payment.Currency,
		CallbackURL: req.CallbackURL,
		Metadata:    payment.Metadata,
	}
	if payment.IsSplit {
		initReq.Subaccount = payment.SubaccountCode
		initReq.Bearer = payment.FeeBearer
	}

	init, err := s.gateway.Initialize(ctx, initReq)
	if err != nil {
		// The pending row stays; a retry reuses the same reference.
		if apperrors.KindOf(err) != apperrors.KindGateway {
			err = apperrors.Wrap(apperrors.KindGateway, "payment gateway initialization failed", err)
		}
		return nil, err
	}

	if err := s.repo.SaveAuthorization(ctx, payment.ID, init.AuthorizationURL, init.AccessCode); err != nil {
		return nil, err
	}

	s.log.LogPaymentInitiated(ctx, booking.ID.String(), payment.Reference, payment.IsSplit)

	return &InitiatePaymentResponse{
		PaymentID:        payment.ID,
		Reference:        payment.Reference,
		AuthorizationURL: init.AuthorizationURL,
		AccessCode:       init.AccessCode,
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		IsSplitPayment:   payment.IsSplit,
		SubaccountID:     payment.SubaccountCode,
	}, nil
}

func (s *service) GetPaymentForBooking(ctx context.Context, callerID, bookingID uuid.UUID) (*PaymentResponse, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ExplorerID != callerID && booking.VendorID != callerID {
		return nil, apperrors.NotFound("booking not found")
	}
	payment, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	resp := payment.ToResponse()
	return &resp, nil
}

func (s *service) ConfirmCharge(ctx context.Context, reference string, paidAt time.Time, fees FeeBreakdown) (*Payment, bool, error) {
	payment, applied, err := s.repo.ConfirmCharge(ctx, reference, paidAt, fees)
	if err != nil {
		return nil, false, err
	}
	if applied {
		s.log.LogPaymentConfirmed(ctx, reference, payment.Amount)
	}
	return payment, applied, nil
}
