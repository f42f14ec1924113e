package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/listings"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
)

type fakeRepo struct {
	created   *Booking
	createErr error
	store     map[uuid.UUID]*Booking
	approved  []uuid.UUID
	cancelled []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: make(map[uuid.UUID]*Booking)}
}

func (f *fakeRepo) CreateWithReservation(ctx context.Context, booking *Booking, listing listings.Listing, spec listings.ReservationSpec) error {
	if f.createErr != nil {
		return f.createErr
	}
	booking.ID = uuid.New()
	booking.Code = "AB-123456"
	f.created = booking
	f.store[booking.ID] = booking
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := f.store[id]
	if !ok {
		return nil, apperrors.NotFound("booking not found")
	}
	return booking, nil
}

func (f *fakeRepo) GetByExplorer(ctx context.Context, explorerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepo) GetByVendor(ctx context.Context, vendorID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepo) ApproveRequested(ctx context.Context, bookingID, vendorID uuid.UUID) error {
	f.approved = append(f.approved, bookingID)
	return nil
}

func (f *fakeRepo) CancelWithRelease(ctx context.Context, bookingID uuid.UUID) error {
	f.cancelled = append(f.cancelled, bookingID)
	f.store[bookingID].Status = StatusCancelled
	return nil
}

type fakeListingRepo struct {
	listing listings.Listing
	err     error
}

func (f *fakeListingRepo) Resolve(ctx context.Context, bookingType listings.BookingType, id uuid.UUID) (listings.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listing, nil
}

type fakeDispatcher struct {
	events   []string
	payloads []map[string]interface{}
}

func (f *fakeDispatcher) Emit(ctx context.Context, eventName string, payload map[string]interface{}) error {
	f.events = append(f.events, eventName)
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestCreateBookingRequestEvent(t *testing.T) {
	vendorID := uuid.New()
	explorerID := uuid.New()
	event := &listings.Event{
		ID:          uuid.New(),
		VendorID:    vendorID,
		EventTitle:  "Lagos Jazz Festival",
		TicketPrice: 50000,
	}

	repo := newFakeRepo()
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, &fakeListingRepo{listing: event}, dispatcher, 0)

	resp, err := svc.CreateBookingRequest(context.Background(), explorerID, CreateBookingRequest{
		BookingType: "events",
		ListingID:   event.ID.String(),
		Quantity:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100000), resp.TotalAmount)
	assert.Equal(t, StatusRequested, repo.created.Status)
	assert.Equal(t, PaymentPending, repo.created.PaymentStatus)
	assert.Equal(t, vendorID, repo.created.VendorID)
	assert.Equal(t, []string{"booking.request"}, dispatcher.events)
	assert.Equal(t, repo.created.Code, dispatcher.payloads[0]["booking_code"])
}

func TestCreateBookingRequestAccommodation(t *testing.T) {
	roomID := uuid.New()
	stay := &listings.Accommodation{
		ID:        uuid.New(),
		VendorID:  uuid.New(),
		StayTitle: "Beach Resort",
		MaxGuests: 4,
		RoomTypes: []listings.RoomType{{
			ID:            roomID,
			Name:          "Deluxe",
			NightlyRate:   100000,
			DiscountType:  listings.DiscountPercentage,
			DiscountValue: 10,
		}},
	}

	repo := newFakeRepo()
	svc := NewService(repo, &fakeListingRepo{listing: stay}, &fakeDispatcher{}, 0)

	checkIn := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 3)
	resp, err := svc.CreateBookingRequest(context.Background(), uuid.New(), CreateBookingRequest{
		BookingType: "accommodations",
		ListingID:   stay.ID.String(),
		RoomTypeID:  roomID.String(),
		CheckIn:     &checkIn,
		CheckOut:    &checkOut,
		Guests:      2,
		Quantity:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(270000), resp.TotalAmount)
}

func TestCreateBookingRequestRejectsUnknownType(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeListingRepo{}, &fakeDispatcher{}, 0)

	_, err := svc.CreateBookingRequest(context.Background(), uuid.New(), CreateBookingRequest{
		BookingType: "cruises",
		ListingID:   uuid.NewString(),
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateBookingRequestReservationConflict(t *testing.T) {
	event := &listings.Event{ID: uuid.New(), VendorID: uuid.New(), EventTitle: "Expo", TicketPrice: 1000}
	repo := newFakeRepo()
	repo.createErr = apperrors.Conflict("selected unit is not available")
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, &fakeListingRepo{listing: event}, dispatcher, 0)

	_, err := svc.CreateBookingRequest(context.Background(), uuid.New(), CreateBookingRequest{
		BookingType: "events",
		ListingID:   event.ID.String(),
		Quantity:    1,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Empty(t, dispatcher.events, "no notification for a failed booking")
}

func TestCreateBookingRequestAddsServiceFee(t *testing.T) {
	event := &listings.Event{ID: uuid.New(), VendorID: uuid.New(), EventTitle: "Expo", TicketPrice: 20000}
	repo := newFakeRepo()
	svc := NewService(repo, &fakeListingRepo{listing: event}, &fakeDispatcher{}, 500)

	resp, err := svc.CreateBookingRequest(context.Background(), uuid.New(), CreateBookingRequest{
		BookingType: "events",
		ListingID:   event.ID.String(),
		Quantity:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20500), resp.TotalAmount)
	assert.Equal(t, int64(500), repo.created.ServiceFee)
}

func TestGetBookingVisibility(t *testing.T) {
	explorerID := uuid.New()
	vendorID := uuid.New()
	repo := newFakeRepo()
	booking := &Booking{ID: uuid.New(), ExplorerID: explorerID, VendorID: vendorID, Status: StatusRequested}
	repo.store[booking.ID] = booking

	svc := NewService(repo, &fakeListingRepo{}, &fakeDispatcher{}, 0)

	_, err := svc.GetBooking(context.Background(), booking.ID, explorerID)
	assert.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), booking.ID, vendorID)
	assert.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), booking.ID, uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCancelBooking(t *testing.T) {
	explorerID := uuid.New()
	repo := newFakeRepo()
	booking := &Booking{ID: uuid.New(), ExplorerID: explorerID, VendorID: uuid.New(), Status: StatusPending}
	repo.store[booking.ID] = booking

	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, &fakeListingRepo{}, dispatcher, 0)

	t.Run("stranger cannot cancel", func(t *testing.T) {
		err := svc.CancelBooking(context.Background(), uuid.New(), booking.ID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		assert.Empty(t, repo.cancelled)
	})

	t.Run("owner cancels", func(t *testing.T) {
		err := svc.CancelBooking(context.Background(), explorerID, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{booking.ID}, repo.cancelled)
		assert.Contains(t, dispatcher.events, "booking.cancelled")
	})

	t.Run("cancelled booking stays cancelled", func(t *testing.T) {
		err := svc.CancelBooking(context.Background(), explorerID, booking.ID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})
}

func TestApproveBooking(t *testing.T) {
	repo := newFakeRepo()
	dispatcher := &fakeDispatcher{}
	svc := NewService(repo, &fakeListingRepo{}, dispatcher, 0)

	bookingID := uuid.New()
	err := svc.ApproveBooking(context.Background(), uuid.New(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bookingID}, repo.approved)
	assert.Contains(t, dispatcher.events, "booking.approved")
}
