package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Active reports whether the booking still holds its date range.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

// CanTransition reports whether the vehicle owner may move a booking from s to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingRejected
	case BookingConfirmed:
		return next == BookingCompleted
	}
	return false
}

// Booking reserves a vehicle for the half-open date range [StartDate, EndDate).
type Booking struct {
	ID         int64         `db:"id" json:"id"`
	VehicleID  int64         `db:"vehicle_id" json:"vehicle_id"`
	RenterID   int64         `db:"renter_id" json:"renter_id"`
	StartDate  time.Time     `db:"start_date" json:"start_date"`
	EndDate    time.Time     `db:"end_date" json:"end_date"`
	Status     BookingStatus `db:"status" json:"status"`
	TotalPrice int64         `db:"total_price" json:"total_price"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
}

// Days returns the number of rental days covered by the booking.
func (b Booking) Days() int64 {
	return int64(b.EndDate.Sub(b.StartDate).Hours() / 24)
}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingRejected, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}
