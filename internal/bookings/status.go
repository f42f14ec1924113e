package bookings

// Status tracks the booking lifecycle.
type Status string

const (
	StatusRequested Status = "requested"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanBeCancelled checks if a booking with this status can be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusRequested || s == StatusPending || s == StatusConfirmed
}

// IsPayable checks if a booking in this status may initiate payment
func (s Status) IsPayable() bool {
	return s == StatusRequested || s == StatusPending
}

// PaymentState tracks whether the booking's charge went through.
type PaymentState string

const (
	PaymentPending PaymentState = "pending"
	PaymentPaid    PaymentState = "paid"
	PaymentFailed  PaymentState = "failed"
)

// IsValid checks if the payment state is valid
func (p PaymentState) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

func (p PaymentState) String() string {
	return string(p)
}
