package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cx-tal-miterani/lodging-booking/internal/models"
	"github.com/cx-tal-miterani/lodging-booking/internal/reservation"
	"github.com/cx-tal-miterani/lodging-booking/internal/workflows"
	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
)

// WorkflowExecutor is the part of client.Client the workflow engine needs
type WorkflowExecutor interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// workflowBookingService commits bookings through BookingWorkflow. The
// worker runs in the same process, so reads still go to the local store.
type workflowBookingService struct {
	temporalClient WorkflowExecutor
	taskQueue      string
	store          *reservation.Store
	notifier       Notifier
}

// NewWorkflowBookingService creates a BookingService that books via Temporal
func NewWorkflowBookingService(temporalClient WorkflowExecutor, taskQueue string, store *reservation.Store, notifier Notifier) BookingService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &workflowBookingService{
		temporalClient: temporalClient,
		taskQueue:      taskQueue,
		store:          store,
		notifier:       notifier,
	}
}

func (s *workflowBookingService) CheckAvailability(ctx context.Context, arrivalDate string, durationDays int) (*models.AvailabilityResponse, error) {
	return checkAvailability(s.store, arrivalDate, durationDays)
}

func (s *workflowBookingService) CreateReservation(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, error) {
	requestID := uuid.New().String()

	input := models.BookingWorkflowInput{
		RequestID:     requestID,
		OwnerName:     req.OwnerName,
		ContactNumber: req.ContactNumber,
		GuestCount:    req.GuestCount,
		DurationDays:  req.DurationDays,
		ArrivalDate:   req.ArrivalDate,
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        "booking-" + requestID,
		TaskQueue: s.taskQueue,
	}

	run, err := s.temporalClient.ExecuteWorkflow(ctx, workflowOptions, workflows.BookingWorkflowName, input)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("failed to start workflow %s: %w", workflowOptions.ID, ctx.Err())
		}
		return nil, fmt.Errorf("failed to start workflow: %w", err)
	}

	var result models.BookingWorkflowResult
	if err := run.Get(ctx, &result); err != nil {
		// the client reports an expired deadline as a gRPC service error
		if ctx.Err() != nil {
			return nil, fmt.Errorf("booking workflow %s: %w", workflowOptions.ID, ctx.Err())
		}
		return nil, fmt.Errorf("booking workflow %s: %w", workflowOptions.ID, err)
	}

	switch result.Outcome {
	case models.BookingOutcomeBooked:
		if result.Reservation == nil {
			return nil, fmt.Errorf("booking workflow %s: booked without a reservation", workflowOptions.ID)
		}
		s.notifier.ReservationBooked(result.Reservation)
		return result.Reservation, nil

	case models.BookingOutcomeUnavailable:
		// the request already parsed inside the workflow
		if arrival, err := reservation.ParseDate(req.ArrivalDate); err == nil {
			taken := s.store.ConflictingDates(arrival, req.DurationDays)
			s.notifier.BookingRejected(arrival.String(), req.DurationDays, reservation.FormatDates(taken))
		}
		return nil, fmt.Errorf("create reservation: %w", reservation.ErrUnavailable)

	case models.BookingOutcomeInvalidInput:
		reason := strings.TrimPrefix(result.Reason, reservation.ErrInvalidInput.Error()+": ")
		return nil, fmt.Errorf("%w: %s", reservation.ErrInvalidInput, reason)

	default:
		return nil, fmt.Errorf("booking workflow %s: unexpected outcome %q", workflowOptions.ID, result.Outcome)
	}
}

func (s *workflowBookingService) ListReservations(ctx context.Context) []*models.Reservation {
	return listReservations(s.store)
}

func (s *workflowBookingService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return getReservation(s.store, id)
}
