package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cx-tal-miterani/lodging-booking/internal/models"
	"github.com/cx-tal-miterani/lodging-booking/internal/reservation"
	"github.com/google/uuid"
)

// BookingService defines the booking service interface
type BookingService interface {
	CheckAvailability(ctx context.Context, arrivalDate string, durationDays int) (*models.AvailabilityResponse, error)
	CreateReservation(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, error)
	ListReservations(ctx context.Context) []*models.Reservation
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
}

// Notifier is told about every booking attempt that reaches the store
type Notifier interface {
	ReservationBooked(r *models.Reservation)
	BookingRejected(arrivalDate string, durationDays int, conflictingDates []string)
}

type nopNotifier struct{}

func (nopNotifier) ReservationBooked(*models.Reservation) {}
func (nopNotifier) BookingRejected(string, int, []string) {}

// bookingServiceImpl commits bookings directly against the store
type bookingServiceImpl struct {
	store    *reservation.Store
	clock    reservation.Clock
	notifier Notifier
}

// NewBookingService creates a BookingService backed by store
func NewBookingService(store *reservation.Store, clock reservation.Clock, notifier Notifier) BookingService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &bookingServiceImpl{
		store:    store,
		clock:    clock,
		notifier: notifier,
	}
}

func (s *bookingServiceImpl) CheckAvailability(ctx context.Context, arrivalDate string, durationDays int) (*models.AvailabilityResponse, error) {
	return checkAvailability(s.store, arrivalDate, durationDays)
}

func (s *bookingServiceImpl) CreateReservation(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, error) {
	r, err := reservation.NewReservationWithClock(s.clock,
		req.OwnerName, req.ContactNumber, req.GuestCount, req.DurationDays, req.ArrivalDate)
	if err != nil {
		return nil, err
	}

	if err := s.store.Reserve(ctx, r); err != nil {
		if errors.Is(err, reservation.ErrUnavailable) {
			taken := s.store.ConflictingDates(r.ArrivalDate(), r.DurationDays())
			s.notifier.BookingRejected(r.ArrivalDate().String(), r.DurationDays(), reservation.FormatDates(taken))
		}
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	out := models.FromReservation(r)
	s.notifier.ReservationBooked(out)
	return out, nil
}

func (s *bookingServiceImpl) ListReservations(ctx context.Context) []*models.Reservation {
	return listReservations(s.store)
}

func (s *bookingServiceImpl) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return getReservation(s.store, id)
}

// Read paths shared by both engines; they always go to the in-process store.

func checkAvailability(store *reservation.Store, arrivalDate string, durationDays int) (*models.AvailabilityResponse, error) {
	if durationDays < 1 {
		return nil, fmt.Errorf("%w: duration must be a positive integer, got %d", reservation.ErrInvalidInput, durationDays)
	}
	arrival, err := reservation.ParseDate(arrivalDate)
	if err != nil {
		return nil, err
	}

	resp := &models.AvailabilityResponse{
		Available:     store.IsAvailable(arrival, durationDays),
		ArrivalDate:   arrival.String(),
		DepartureDate: arrival.AddDays(durationDays).String(),
		DurationDays:  durationDays,
	}
	if !resp.Available {
		resp.ConflictingDates = reservation.FormatDates(store.ConflictingDates(arrival, durationDays))
	}
	return resp, nil
}

func listReservations(store *reservation.Store) []*models.Reservation {
	all := store.ListAll()
	out := make([]*models.Reservation, 0, len(all))
	for _, r := range all {
		out = append(out, models.FromReservation(r))
	}
	return out
}

func getReservation(store *reservation.Store, id string) (*models.Reservation, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, reservation.ErrNotFound
	}
	r, err := store.Get(parsed)
	if err != nil {
		return nil, err
	}
	return models.FromReservation(r), nil
}
