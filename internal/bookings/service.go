package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/listings"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
)

// Dispatcher is the notification fan-out contract. Emit failures are
// logged and never affect the booking outcome.
type Dispatcher interface {
	Emit(ctx context.Context, eventName string, payload map[string]interface{}) error
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBookingRequest(ctx context.Context, explorerID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, bookingID, callerID uuid.UUID) (*Booking, error)
	GetExplorerBookings(ctx context.Context, explorerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetVendorBookings(ctx context.Context, vendorID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	ApproveBooking(ctx context.Context, vendorID, bookingID uuid.UUID) error
	CancelBooking(ctx context.Context, explorerID, bookingID uuid.UUID) error
}

type service struct {
	repo       Repository
	listings   listings.Repository
	dispatcher Dispatcher
	serviceFee int64
	log        *logger.Logger
}

// NewService creates a new booking service instance
func NewService(repo Repository, listingRepo listings.Repository, dispatcher Dispatcher, serviceFee int64) Service {
	return &service{
		repo:       repo,
		listings:   listingRepo,
		dispatcher: dispatcher,
		serviceFee: serviceFee,
		log:        logger.GetDefault(),
	}
}

// CreateBookingRequest validates the request against the listing,
// reserves inventory and records the booking, all in one transaction.
// The vendor notification afterwards is best-effort.
func (s *service) CreateBookingRequest(ctx context.Context, explorerID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	bookingType := listings.BookingType(req.BookingType)
	if !bookingType.IsValid() {
		return nil, apperrors.Validation("unknown booking type")
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, apperrors.Validation("invalid listing id")
	}

	listing, err := s.listings.Resolve(ctx, bookingType, listingID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	spec := listings.ReservationSpec{
		UnitKey:  req.RoomTypeID,
		Quantity: quantity,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Guests:   req.Guests,
	}

	if err := listing.ValidateReservation(spec); err != nil {
		return nil, err
	}

	total, err := listing.Quote(spec)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		ExplorerID:    explorerID,
		VendorID:      listing.VendorRef(),
		BookingType:   bookingType,
		ListingID:     listing.ListingID(),
		UnitKey:       spec.UnitKey,
		CheckIn:       spec.CheckIn,
		CheckOut:      spec.CheckOut,
		Guests:        spec.Guests,
		Quantity:      spec.Quantity,
		TotalAmount:   total + s.serviceFee,
		ServiceFee:    s.serviceFee,
		CouponCode:    req.CouponCode,
		Status:        StatusRequested,
		PaymentStatus: PaymentPending,
	}

	if err := s.repo.CreateWithReservation(ctx, booking, listing, spec); err != nil {
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.Code, explorerID.String())

	// Vendor-facing domain event; must not affect the booking outcome.
	if err := s.dispatcher.Emit(ctx, "booking.request", map[string]interface{}{
		"booking_id":    booking.ID.String(),
		"booking_code":  booking.Code,
		"vendor_id":     booking.VendorID.String(),
		"explorer_id":   explorerID.String(),
		"listing_title": listing.Title(),
		"total_amount":  booking.TotalAmount,
	}); err != nil {
		s.log.WithError(err).Warn("booking request notification failed", "booking_code", booking.Code)
	}

	resp := booking.ToResponse()
	resp.ListingTitle = listing.Title()
	return &resp, nil
}

// GetBooking retrieves a booking visible to the caller (its explorer or
// its vendor).
func (s *service) GetBooking(ctx context.Context, bookingID, callerID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ExplorerID != callerID && booking.VendorID != callerID {
		return nil, apperrors.NotFound("booking not found")
	}
	return booking, nil
}

func (s *service) GetExplorerBookings(ctx context.Context, explorerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetByExplorer(ctx, explorerID, query)
}

func (s *service) GetVendorBookings(ctx context.Context, vendorID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetByVendor(ctx, vendorID, query)
}

// ApproveBooking moves a requested booking to pending on behalf of its
// vendor, after which payment may be initiated.
func (s *service) ApproveBooking(ctx context.Context, vendorID, bookingID uuid.UUID) error {
	if err := s.repo.ApproveRequested(ctx, bookingID, vendorID); err != nil {
		return err
	}

	if err := s.dispatcher.Emit(ctx, "booking.approved", map[string]interface{}{
		"booking_id": bookingID.String(),
		"vendor_id":  vendorID.String(),
	}); err != nil {
		s.log.WithError(err).Warn("booking approval notification failed", "booking_id", bookingID.String())
	}
	return nil
}

// CancelBooking cancels an explorer's booking and releases the reserved
// inventory through the compensating operation.
func (s *service) CancelBooking(ctx context.Context, explorerID, bookingID uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.ExplorerID != explorerID {
		return apperrors.NotFound("booking not found")
	}
	if !booking.Status.CanBeCancelled() {
		return apperrors.Conflict("booking cannot be cancelled")
	}

	if err := s.repo.CancelWithRelease(ctx, bookingID); err != nil {
		return err
	}

	if err := s.dispatcher.Emit(ctx, "booking.cancelled", map[string]interface{}{
		"booking_id":  bookingID.String(),
		"vendor_id":   booking.VendorID.String(),
		"explorer_id": explorerID.String(),
	}); err != nil {
		s.log.WithError(err).Warn("booking cancellation notification failed", "booking_id", bookingID.String())
	}
	return nil
}
