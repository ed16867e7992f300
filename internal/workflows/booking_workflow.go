package workflows

import (
	"time"

	"github.com/cx-tal-miterani/lodging-booking/internal/activities"
	"github.com/cx-tal-miterani/lodging-booking/internal/models"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// BookingWorkflowName is the registered workflow type
	BookingWorkflowName = "BookingWorkflow"
	// ReserveTimeout bounds a single ReserveStay attempt
	ReserveTimeout = 10 * time.Second
	// MaxReserveAttempts is how often an infrastructure failure is retried
	MaxReserveAttempts = 3
)

// BookingWorkflow reserves a stay and, once committed, sends the confirmation.
func BookingWorkflow(ctx workflow.Context, input models.BookingWorkflowInput) (*models.BookingWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Booking workflow started", "requestId", input.RequestID)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: ReserveTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    MaxReserveAttempts,
		},
	})

	var reserved models.ReserveStayResult
	if err := workflow.ExecuteActivity(ctx, activities.ReserveStayName, input).Get(ctx, &reserved); err != nil {
		logger.Error("ReserveStay failed", "requestId", input.RequestID, "error", err)
		return nil, err
	}

	if !reserved.Success {
		logger.Info("Booking rejected", "requestId", input.RequestID, "outcome", reserved.Outcome)
		return &models.BookingWorkflowResult{
			Outcome: reserved.Outcome,
			Reason:  reserved.Error,
		}, nil
	}

	res := reserved.Reservation
	err := workflow.ExecuteActivity(ctx, activities.SendConfirmationName, models.SendConfirmationInput{
		RequestID:     input.RequestID,
		ReservationID: res.ID,
		OwnerName:     res.OwnerName,
		ContactNumber: res.ContactNumber,
		ArrivalDate:   res.ArrivalDate,
		DepartureDate: res.DepartureDate,
	}).Get(ctx, nil)
	if err != nil {
		// the stay is already committed; a lost confirmation does not undo it
		logger.Warn("Failed to send confirmation", "reservationId", res.ID, "error", err)
	}

	logger.Info("Booking workflow completed", "requestId", input.RequestID, "reservationId", res.ID)
	return &models.BookingWorkflowResult{
		Outcome:     models.BookingOutcomeBooked,
		Reservation: res,
	}, nil
}
