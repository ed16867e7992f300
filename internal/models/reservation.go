package models

import (
	"time"

	"github.com/cx-tal-miterani/lodging-booking/internal/reservation"
)

// Reservation is the display form of a booked stay. All dates are MM/DD/YYYY.
type Reservation struct {
	ID            string    `json:"id"`
	OwnerName     string    `json:"ownerName"`
	ContactNumber string    `json:"contactNumber"`
	GuestCount    int       `json:"guestCount"`
	DurationDays  int       `json:"durationDays"`
	ArrivalDate   string    `json:"arrivalDate"`
	DepartureDate string    `json:"departureDate"`
	OccupiedDates []string  `json:"occupiedDates"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromReservation renders a stored reservation for display.
func FromReservation(r *reservation.Reservation) *Reservation {
	return &Reservation{
		ID:            r.ID().String(),
		OwnerName:     r.OwnerName(),
		ContactNumber: r.ContactNumber(),
		GuestCount:    r.GuestCount(),
		DurationDays:  r.DurationDays(),
		ArrivalDate:   r.ArrivalDate().String(),
		DepartureDate: r.DepartureDate().String(),
		OccupiedDates: reservation.FormatDates(r.OccupiedDates()),
		CreatedAt:     r.CreatedAt(),
	}
}

// CreateReservationRequest represents a booking request
type CreateReservationRequest struct {
	OwnerName     string `json:"ownerName"`
	ContactNumber string `json:"contactNumber"`
	GuestCount    int    `json:"guestCount" validate:"min=1"`
	DurationDays  int    `json:"durationDays" validate:"min=1"`
	ArrivalDate   string `json:"arrivalDate" validate:"required"`
}

// AvailabilityRequest is the query for a candidate stay
type AvailabilityRequest struct {
	ArrivalDate  string `validate:"required"`
	DurationDays int    `validate:"min=1"`
}

// AvailabilityResponse reports whether a stay can be booked
type AvailabilityResponse struct {
	Available        bool     `json:"available"`
	ArrivalDate      string   `json:"arrivalDate"`
	DepartureDate    string   `json:"departureDate"`
	DurationDays     int      `json:"durationDays"`
	ConflictingDates []string `json:"conflictingDates,omitempty"`
}

// ReservationListResponse is the admin view of every booking
type ReservationListResponse struct {
	Reservations []*Reservation `json:"reservations"`
	Count        int            `json:"count"`
}
