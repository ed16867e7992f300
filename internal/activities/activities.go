package activities

import (
	"context"
	"errors"
	"sync"

	"github.com/cx-tal-miterani/lodging-booking/internal/models"
	"github.com/cx-tal-miterani/lodging-booking/internal/reservation"
	"go.temporal.io/sdk/activity"
)

// Activity names as registered on the worker
const (
	ReserveStayName      = "ReserveStay"
	SendConfirmationName = "SendConfirmation"
)

// Activities runs booking steps against the process's reservation store
type Activities struct {
	store *reservation.Store
	clock reservation.Clock

	// committed maps request IDs to their booking so a retried attempt
	// reports the stay it already made instead of a conflict with itself.
	// Entries are dropped once SendConfirmation runs for the request.
	committed sync.Map
}

// NewActivities creates activities bound to store
func NewActivities(store *reservation.Store, clock reservation.Clock) *Activities {
	return &Activities{store: store, clock: clock}
}

// ReserveStay builds the reservation and commits it if its nights are free.
// Invalid input and conflicts are business outcomes and are returned in the
// result rather than as activity errors, so Temporal does not retry them.
func (a *Activities) ReserveStay(ctx context.Context, input models.BookingWorkflowInput) (*models.ReserveStayResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Reserving stay", "requestId", input.RequestID, "arrivalDate", input.ArrivalDate, "durationDays", input.DurationDays)

	if prior, ok := a.committed.Load(input.RequestID); ok && input.RequestID != "" {
		logger.Info("Stay already reserved for request", "requestId", input.RequestID)
		return &models.ReserveStayResult{
			Success:     true,
			Outcome:     models.BookingOutcomeBooked,
			Reservation: prior.(*models.Reservation),
		}, nil
	}

	r, err := reservation.NewReservationWithClock(a.clock,
		input.OwnerName, input.ContactNumber, input.GuestCount, input.DurationDays, input.ArrivalDate)
	if err != nil {
		logger.Warn("Rejected booking input", "requestId", input.RequestID, "error", err)
		return &models.ReserveStayResult{
			Success: false,
			Outcome: models.BookingOutcomeInvalidInput,
			Error:   err.Error(),
		}, nil
	}

	if err := a.store.Reserve(ctx, r); err != nil {
		if errors.Is(err, reservation.ErrUnavailable) {
			logger.Info("Date range not available", "requestId", input.RequestID, "arrivalDate", input.ArrivalDate)
			return &models.ReserveStayResult{
				Success: false,
				Outcome: models.BookingOutcomeUnavailable,
				Error:   err.Error(),
			}, nil
		}
		return nil, err
	}

	booked := models.FromReservation(r)
	if input.RequestID != "" {
		a.committed.Store(input.RequestID, booked)
	}

	logger.Info("Stay reserved", "requestId", input.RequestID, "reservationId", booked.ID)
	return &models.ReserveStayResult{
		Success:     true,
		Outcome:     models.BookingOutcomeBooked,
		Reservation: booked,
	}, nil
}

// SendConfirmation records the confirmation for the guest. ReserveStay has
// completed by now, so its retry entry is no longer needed.
func (a *Activities) SendConfirmation(ctx context.Context, input models.SendConfirmationInput) error {
	if input.RequestID != "" {
		a.committed.Delete(input.RequestID)
	}

	logger := activity.GetLogger(ctx)
	logger.Info("Reservation confirmed",
		"reservationId", input.ReservationID,
		"ownerName", input.OwnerName,
		"contactNumber", input.ContactNumber,
		"arrivalDate", input.ArrivalDate,
		"departureDate", input.DepartureDate,
	)
	return nil
}
