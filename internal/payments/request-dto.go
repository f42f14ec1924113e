package payments

// InitiatePaymentRequest starts (or resumes) checkout for a booking.
type InitiatePaymentRequest struct {
	BookingID   string `json:"booking_id" binding:"required,uuid"`
	CallbackURL string `json:"callback_url,omitempty" binding:"omitempty,url"`
}
