package models

// Booking statuses. A booking is never physically deleted while payments
// reference it; cancellation is a status transition.
const (
	BookingUninitialized = "uninitialized"
	BookingUnpaid        = "unpaid"
	BookingActive        = "active"
	BookingRebooking     = "rebooking"
	BookingCancelled     = "cancelled"
)

const PassengerBookingType = "passenger"

// Booking captures the booking row shared across services.
type Booking struct {
	ID               int64
	Status           string
	Type             string
	Number           string
	UserID           int64
	OrderBatch       string
	VoyageID         int64
	BoardingPort     int64
	DisembarkingPort int64
	EditAttempts     int
}
