package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("date range not available")
	ErrNotFound     = errors.New("reservation not found")
)

// Clock supplies creation timestamps.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Reservation is one confirmed stay. It is never mutated after creation.
type Reservation struct {
	id            uuid.UUID
	ownerName     string
	contactNumber string
	guestCount    int
	durationDays  int
	arrivalDate   Date
	createdAt     time.Time
}

// NewReservation validates the raw booking values and builds a Reservation.
// Owner name and contact number are kept verbatim, empty strings included.
func NewReservation(ownerName, contactNumber string, guestCount, durationDays int, arrivalDate string) (*Reservation, error) {
	return NewReservationWithClock(RealClock{}, ownerName, contactNumber, guestCount, durationDays, arrivalDate)
}

// NewReservationWithClock is NewReservation with an explicit creation clock.
func NewReservationWithClock(clock Clock, ownerName, contactNumber string, guestCount, durationDays int, arrivalDate string) (*Reservation, error) {
	if guestCount < 1 {
		return nil, fmt.Errorf("%w: guest count must be a positive integer, got %d", ErrInvalidInput, guestCount)
	}
	if durationDays < 1 {
		return nil, fmt.Errorf("%w: duration must be a positive integer, got %d", ErrInvalidInput, durationDays)
	}

	arrival, err := ParseDate(arrivalDate)
	if err != nil {
		return nil, err
	}

	return &Reservation{
		id:            uuid.New(),
		ownerName:     ownerName,
		contactNumber: contactNumber,
		guestCount:    guestCount,
		durationDays:  durationDays,
		arrivalDate:   arrival,
		createdAt:     clock.Now(),
	}, nil
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) OwnerName() string     { return r.ownerName }
func (r *Reservation) ContactNumber() string { return r.contactNumber }
func (r *Reservation) GuestCount() int       { return r.guestCount }
func (r *Reservation) DurationDays() int     { return r.durationDays }
func (r *Reservation) ArrivalDate() Date     { return r.arrivalDate }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }

// DepartureDate is the first day after the stay; it is not occupied.
func (r *Reservation) DepartureDate() Date {
	return r.arrivalDate.AddDays(r.durationDays)
}

// OccupiedDates returns the nights of the stay, arrival first.
func (r *Reservation) OccupiedDates() []Date {
	return DateRange(r.arrivalDate, r.durationDays)
}
