package bookings

import "time"

// BookingResponse is the API shape of a booking
type BookingResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	BookingType   string     `json:"booking_type"`
	ListingID     string     `json:"listing_id"`
	ListingTitle  string     `json:"listing_title,omitempty"`
	CheckIn       *time.Time `json:"check_in,omitempty"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	Guests        int        `json:"guests,omitempty"`
	Quantity      int        `json:"quantity"`
	TotalAmount   int64      `json:"total_amount"`
	ServiceFee    int64      `json:"service_fee"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToResponse converts a Booking to its API shape
func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		Code:          b.Code,
		BookingType:   b.BookingType.String(),
		ListingID:     b.ListingID.String(),
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		Quantity:      b.Quantity,
		TotalAmount:   b.TotalAmount,
		ServiceFee:    b.ServiceFee,
		Status:        b.Status.String(),
		PaymentStatus: b.PaymentStatus.String(),
		CreatedAt:     b.CreatedAt,
	}
}
