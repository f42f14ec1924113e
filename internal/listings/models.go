package listings

import (
	"time"

	"github.com/google/uuid"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
)

// BookingType tags which listing variant a booking points at.
type BookingType string

const (
	TypeEvents         BookingType = "events"
	TypeAccommodations BookingType = "accommodations"
	TypeLeisure        BookingType = "leisure"
	TypeMovies         BookingType = "movies"
)

// IsValid checks if the booking type is known
func (t BookingType) IsValid() bool {
	switch t {
	case TypeEvents, TypeAccommodations, TypeLeisure, TypeMovies:
		return true
	}
	return false
}

func (t BookingType) String() string {
	return string(t)
}

// Discount types applied to a unit price before multiplying by
// duration/quantity.
const (
	DiscountNone       = ""
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// ReservationSpec carries the listing-type-specific details of a booking
// request. Variants validate and price the parts that apply to them.
type ReservationSpec struct {
	UnitKey  string
	Quantity int
	CheckIn  *time.Time
	CheckOut *time.Time
	Guests   int
}

// Listing is the capability every bookable variant implements. Selection
// happens once, by tag, in Repository.Resolve; everything downstream
// works against this interface. The unexported method closes the set to
// the variants defined here.
type Listing interface {
	ListingID() uuid.UUID
	VendorRef() uuid.UUID
	Title() string
	Type() BookingType

	// ValidateReservation checks the spec against this variant's rules.
	ValidateReservation(spec ReservationSpec) error
	// Quote returns the total price for the spec: discounted unit price
	// multiplied by nights (accommodations) or quantity (tickets/seats).
	Quote(spec ReservationSpec) (int64, error)

	// inventoryRow names the table and row holding the capacity counter
	// the reservation decrements.
	inventoryRow(spec ReservationSpec) (table string, rowID uuid.UUID, err error)
}

// Event is a one-off ticketed happening.
type Event struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	VendorID       uuid.UUID `json:"vendor_id" gorm:"type:uuid;index;not null"`
	EventTitle     string    `json:"title" gorm:"column:title;not null;size:255"`
	Venue          string    `json:"venue" gorm:"size:255"`
	StartsAt       time.Time `json:"starts_at" gorm:"not null"`
	TicketPrice    int64     `json:"ticket_price" gorm:"not null;check:ticket_price >= 0"`
	DiscountType   string    `json:"discount_type" gorm:"type:varchar(20)"`
	DiscountValue  int64     `json:"discount_value" gorm:"default:0"`
	UnitsAvailable int       `json:"units_available" gorm:"not null;check:units_available >= 0"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Event) TableName() string { return "events" }

func (e *Event) ListingID() uuid.UUID { return e.ID }
func (e *Event) VendorRef() uuid.UUID { return e.VendorID }
func (e *Event) Title() string        { return e.EventTitle }
func (e *Event) Type() BookingType    { return TypeEvents }

func (e *Event) ValidateReservation(spec ReservationSpec) error {
	if spec.Quantity < 1 {
		return apperrors.Validation("ticket quantity must be at least 1")
	}
	return nil
}

func (e *Event) Quote(spec ReservationSpec) (int64, error) {
	unit := discountedUnitPrice(e.TicketPrice, e.DiscountType, e.DiscountValue)
	return unit * int64(spec.Quantity), nil
}

func (e *Event) inventoryRow(ReservationSpec) (string, uuid.UUID, error) {
	return e.TableName(), e.ID, nil
}

// Leisure is a recurring activity with per-ticket pricing.
type Leisure struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	VendorID       uuid.UUID `json:"vendor_id" gorm:"type:uuid;index;not null"`
	ActivityTitle  string    `json:"title" gorm:"column:title;not null;size:255"`
	Location       string    `json:"location" gorm:"size:255"`
	TicketPrice    int64     `json:"ticket_price" gorm:"not null;check:ticket_price >= 0"`
	DiscountType   string    `json:"discount_type" gorm:"type:varchar(20)"`
	DiscountValue  int64     `json:"discount_value" gorm:"default:0"`
	UnitsAvailable int       `json:"units_available" gorm:"not null;check:units_available >= 0"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Leisure) TableName() string { return "leisure_activities" }

func (l *Leisure) ListingID() uuid.UUID { return l.ID }
func (l *Leisure) VendorRef() uuid.UUID { return l.VendorID }
func (l *Leisure) Title() string        { return l.ActivityTitle }
func (l *Leisure) Type() BookingType    { return TypeLeisure }

func (l *Leisure) ValidateReservation(spec ReservationSpec) error {
	if spec.Quantity < 1 {
		return apperrors.Validation("ticket quantity must be at least 1")
	}
	return nil
}

func (l *Leisure) Quote(spec ReservationSpec) (int64, error) {
	unit := discountedUnitPrice(l.TicketPrice, l.DiscountType, l.DiscountValue)
	return unit * int64(spec.Quantity), nil
}

func (l *Leisure) inventoryRow(ReservationSpec) (string, uuid.UUID, error) {
	return l.TableName(), l.ID, nil
}

// Accommodation is a multi-unit listing; the bookable unit is a RoomType.
type Accommodation struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	VendorID  uuid.UUID  `json:"vendor_id" gorm:"type:uuid;index;not null"`
	StayTitle string     `json:"title" gorm:"column:title;not null;size:255"`
	Location  string     `json:"location" gorm:"size:255"`
	MaxGuests int        `json:"max_guests" gorm:"not null;check:max_guests > 0"`
	RoomTypes []RoomType `json:"room_types,omitempty" gorm:"foreignKey:AccommodationID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Accommodation) TableName() string { return "accommodations" }

// RoomType holds the nightly rate and unit counter for one room class.
type RoomType struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	AccommodationID uuid.UUID `json:"accommodation_id" gorm:"type:uuid;index;not null"`
	Name            string    `json:"name" gorm:"not null;size:100"`
	NightlyRate     int64     `json:"nightly_rate" gorm:"not null;check:nightly_rate >= 0"`
	DiscountType    string    `json:"discount_type" gorm:"type:varchar(20)"`
	DiscountValue   int64     `json:"discount_value" gorm:"default:0"`
	UnitsAvailable  int       `json:"units_available" gorm:"not null;check:units_available >= 0"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (RoomType) TableName() string { return "room_types" }

func (a *Accommodation) ListingID() uuid.UUID { return a.ID }
func (a *Accommodation) VendorRef() uuid.UUID { return a.VendorID }
func (a *Accommodation) Title() string        { return a.StayTitle }
func (a *Accommodation) Type() BookingType    { return TypeAccommodations }

func (a *Accommodation) ValidateReservation(spec ReservationSpec) error {
	if spec.CheckIn == nil || spec.CheckOut == nil {
		return apperrors.Validation("check-in and check-out dates are required")
	}
	if !spec.CheckOut.After(*spec.CheckIn) {
		return apperrors.Validation("check-out must be after check-in")
	}
	if spec.Guests < 1 {
		return apperrors.Validation("guest count must be at least 1")
	}
	if spec.Guests > a.MaxGuests {
		return apperrors.Validation("guest count exceeds listing capacity")
	}
	if spec.Quantity < 1 {
		return apperrors.Validation("room quantity must be at least 1")
	}
	if _, err := a.roomType(spec.UnitKey); err != nil {
		return err
	}
	return nil
}

func (a *Accommodation) Quote(spec ReservationSpec) (int64, error) {
	room, err := a.roomType(spec.UnitKey)
	if err != nil {
		return 0, err
	}
	nights := nightsBetween(*spec.CheckIn, *spec.CheckOut)
	unit := discountedUnitPrice(room.NightlyRate, room.DiscountType, room.DiscountValue)
	return unit * int64(nights) * int64(spec.Quantity), nil
}

func (a *Accommodation) inventoryRow(spec ReservationSpec) (string, uuid.UUID, error) {
	room, err := a.roomType(spec.UnitKey)
	if err != nil {
		return "", uuid.Nil, err
	}
	return room.TableName(), room.ID, nil
}

// roomType resolves the concrete unit a multi-unit listing was booked for.
func (a *Accommodation) roomType(unitKey string) (*RoomType, error) {
	if unitKey == "" {
		return nil, apperrors.Validation("a room type must be selected")
	}
	roomID, err := uuid.Parse(unitKey)
	if err != nil {
		return nil, apperrors.Validation("invalid room type identifier")
	}
	for i := range a.RoomTypes {
		if a.RoomTypes[i].ID == roomID {
			return &a.RoomTypes[i], nil
		}
	}
	return nil, apperrors.NotFound("selected room type not found")
}

// MovieShowtime is one scheduled screening at a cinema vendor.
type MovieShowtime struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	VendorID       uuid.UUID `json:"vendor_id" gorm:"type:uuid;index;not null"`
	MovieTitle     string    `json:"title" gorm:"column:title;not null;size:255"`
	Screen         string    `json:"screen" gorm:"size:50"`
	ShowsAt        time.Time `json:"shows_at" gorm:"not null"`
	TicketPrice    int64     `json:"ticket_price" gorm:"not null;check:ticket_price >= 0"`
	DiscountType   string    `json:"discount_type" gorm:"type:varchar(20)"`
	DiscountValue  int64     `json:"discount_value" gorm:"default:0"`
	UnitsAvailable int       `json:"units_available" gorm:"not null;check:units_available >= 0"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (MovieShowtime) TableName() string { return "movie_showtimes" }

func (m *MovieShowtime) ListingID() uuid.UUID { return m.ID }
func (m *MovieShowtime) VendorRef() uuid.UUID { return m.VendorID }
func (m *MovieShowtime) Title() string        { return m.MovieTitle }
func (m *MovieShowtime) Type() BookingType    { return TypeMovies }

func (m *MovieShowtime) ValidateReservation(spec ReservationSpec) error {
	if spec.Quantity < 1 {
		return apperrors.Validation("seat quantity must be at least 1")
	}
	return nil
}

func (m *MovieShowtime) Quote(spec ReservationSpec) (int64, error) {
	unit := discountedUnitPrice(m.TicketPrice, m.DiscountType, m.DiscountValue)
	return unit * int64(spec.Quantity), nil
}

func (m *MovieShowtime) inventoryRow(ReservationSpec) (string, uuid.UUID, error) {
	return m.TableName(), m.ID, nil
}

// discountedUnitPrice applies a discount to a unit price. Percentage
// discounts are clamped to [0, base]; fixed discounts floor at zero.
func discountedUnitPrice(base int64, discountType string, discountValue int64) int64 {
	switch discountType {
	case DiscountPercentage:
		if discountValue <= 0 {
			return base
		}
		reduction := base * discountValue / 100
		if reduction > base {
			reduction = base
		}
		return base - reduction
	case DiscountFixed:
		if discountValue <= 0 {
			return base
		}
		if discountValue >= base {
			return 0
		}
		return base - discountValue
	default:
		return base
	}
}

// nightsBetween counts whole nights between two dates.
func nightsBetween(checkIn, checkOut time.Time) int {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}
