package bookings

import "time"

// CreateBookingRequest is the explorer-facing booking request payload.
// Listing-type-specific fields are validated by the resolved listing,
// not here; binding covers shape only.
type CreateBookingRequest struct {
	BookingType string     `json:"booking_type" binding:"required,oneof=events accommodations leisure movies"`
	ListingID   string     `json:"listing_id" binding:"required,uuid"`
	RoomTypeID  string     `json:"room_type_id" binding:"omitempty,uuid"`
	CheckIn     *time.Time `json:"check_in"`
	CheckOut    *time.Time `json:"check_out"`
	Guests      int        `json:"guests" binding:"omitempty,min=1"`
	Quantity    int        `json:"quantity" binding:"omitempty,min=1"`
	CouponCode  string     `json:"coupon_code" binding:"omitempty,max=50"`
}

// BookingListQuery captures list filters for explorer/vendor views
type BookingListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=requested pending confirmed cancelled"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
