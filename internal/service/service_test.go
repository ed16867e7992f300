package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cx-tal-miterani/lodging-booking/internal/models"
	"github.com/cx-tal-miterani/lodging-booking/internal/reservation"
	"github.com/cx-tal-miterani/lodging-booking/internal/service/mocks"
	"github.com/cx-tal-miterani/lodging-booking/internal/workflows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	temporalmocks "go.temporal.io/sdk/mocks"
)

type testClock struct{}

func (testClock) Now() time.Time { return time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC) }

func alice() *models.CreateReservationRequest {
	return &models.CreateReservationRequest{
		OwnerName:     "Alice",
		ContactNumber: "555",
		GuestCount:    2,
		DurationDays:  3,
		ArrivalDate:   "01/01/2024",
	}
}

func TestBookingService_CreateAndList(t *testing.T) {
	notifier := new(mocks.MockNotifier)
	notifier.On("ReservationBooked", mock.AnythingOfType("*models.Reservation")).Return()

	svc := NewBookingService(reservation.NewStore(), testClock{}, notifier)
	ctx := context.Background()

	created, err := svc.CreateReservation(ctx, alice())
	require.NoError(t, err)
	assert.Equal(t, "01/04/2024", created.DepartureDate)
	assert.Equal(t, []string{"01/01/2024", "01/02/2024", "01/03/2024"}, created.OccupiedDates)
	assert.Equal(t, testClock{}.Now(), created.CreatedAt)

	list := svc.ListReservations(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])

	got, err := svc.GetReservation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.OwnerName)

	notifier.AssertExpectations(t)
}

func TestBookingService_CreateRejectsOverlap(t *testing.T) {
	notifier := new(mocks.MockNotifier)
	notifier.On("ReservationBooked", mock.Anything).Return()
	notifier.On("BookingRejected", "01/03/2024", 2, []string{"01/03/2024"}).Return()

	svc := NewBookingService(reservation.NewStore(), testClock{}, notifier)
	ctx := context.Background()

	_, err := svc.CreateReservation(ctx, alice())
	require.NoError(t, err)

	_, err = svc.CreateReservation(ctx, &models.CreateReservationRequest{
		OwnerName: "Bob", GuestCount: 1, DurationDays: 2, ArrivalDate: "01/03/2024",
	})
	assert.ErrorIs(t, err, reservation.ErrUnavailable)
	assert.Len(t, svc.ListReservations(ctx), 1)

	notifier.AssertExpectations(t)
}

func TestBookingService_CreateRejectsInvalidInput(t *testing.T) {
	svc := NewBookingService(reservation.NewStore(), testClock{}, nil)
	ctx := context.Background()

	for _, req := range []*models.CreateReservationRequest{
		{OwnerName: "A", GuestCount: 0, DurationDays: 2, ArrivalDate: "01/01/2024"},
		{OwnerName: "A", GuestCount: 2, DurationDays: -1, ArrivalDate: "01/01/2024"},
		{OwnerName: "A", GuestCount: 2, DurationDays: 2, ArrivalDate: "13/40/2024"},
	} {
		_, err := svc.CreateReservation(ctx, req)
		assert.ErrorIs(t, err, reservation.ErrInvalidInput)
	}
	assert.Empty(t, svc.ListReservations(ctx))
}

func TestBookingService_CheckAvailability(t *testing.T) {
	svc := NewBookingService(reservation.NewStore(), testClock{}, nil)
	ctx := context.Background()

	resp, err := svc.CheckAvailability(ctx, "01/01/2024", 3)
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, "01/04/2024", resp.DepartureDate)

	_, err = svc.CreateReservation(ctx, alice())
	require.NoError(t, err)

	resp, err = svc.CheckAvailability(ctx, "01/04/2024", 2)
	require.NoError(t, err)
	assert.True(t, resp.Available, "arrival on departure day must be allowed")

	resp, err = svc.CheckAvailability(ctx, "01/03/2024", 2)
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, []string{"01/03/2024"}, resp.ConflictingDates)

	_, err = svc.CheckAvailability(ctx, "13/40/2024", 2)
	assert.ErrorIs(t, err, reservation.ErrInvalidInput)

	_, err = svc.CheckAvailability(ctx, "01/10/2024", 0)
	assert.ErrorIs(t, err, reservation.ErrInvalidInput)
}

func TestBookingService_GetReservationUnknownID(t *testing.T) {
	svc := NewBookingService(reservation.NewStore(), testClock{}, nil)

	_, err := svc.GetReservation(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, reservation.ErrNotFound)

	_, err = svc.GetReservation(context.Background(), "5f1c7a2e-9a53-4d39-9f0c-0a3f1e1b2c3d")
	assert.ErrorIs(t, err, reservation.ErrNotFound)
}

// mockExecutor stands in for the Temporal client
type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error) {
	ret := m.Called(ctx, options, workflow, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(client.WorkflowRun), ret.Error(1)
}

func workflowRunReturning(result models.BookingWorkflowResult, err error) *temporalmocks.WorkflowRun {
	run := new(temporalmocks.WorkflowRun)
	run.On("Get", mock.Anything, mock.AnythingOfType("*models.BookingWorkflowResult")).
		Run(func(args mock.Arguments) {
			*args.Get(1).(*models.BookingWorkflowResult) = result
		}).
		Return(err)
	return run
}

func TestWorkflowBookingService_Booked(t *testing.T) {
	booked := &models.Reservation{ID: "r-1", OwnerName: "Alice", DepartureDate: "01/04/2024"}

	executor := new(mockExecutor)
	executor.On("ExecuteWorkflow", mock.Anything,
		mock.MatchedBy(func(o client.StartWorkflowOptions) bool { return o.TaskQueue == "test-queue" }),
		workflows.BookingWorkflowName, mock.Anything).
		Return(workflowRunReturning(models.BookingWorkflowResult{
			Outcome:     models.BookingOutcomeBooked,
			Reservation: booked,
		}, nil), nil)

	notifier := new(mocks.MockNotifier)
	notifier.On("ReservationBooked", booked).Return()

	svc := NewWorkflowBookingService(executor, "test-queue", reservation.NewStore(), notifier)

	got, err := svc.CreateReservation(context.Background(), alice())
	require.NoError(t, err)
	assert.Equal(t, booked, got)

	executor.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestWorkflowBookingService_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		result  models.BookingWorkflowResult
		runErr  error
		wantErr error
	}{
		{
			name:    "unavailable",
			result:  models.BookingWorkflowResult{Outcome: models.BookingOutcomeUnavailable, Reason: "date range not available"},
			wantErr: reservation.ErrUnavailable,
		},
		{
			name:    "invalid input",
			result:  models.BookingWorkflowResult{Outcome: models.BookingOutcomeInvalidInput, Reason: "invalid input: guest count must be a positive integer, got 0"},
			wantErr: reservation.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := new(mockExecutor)
			executor.On("ExecuteWorkflow", mock.Anything, mock.Anything, workflows.BookingWorkflowName, mock.Anything).
				Return(workflowRunReturning(tt.result, tt.runErr), nil)

			notifier := new(mocks.MockNotifier)
			notifier.On("BookingRejected", mock.Anything, mock.Anything, mock.Anything).Return()

			svc := NewWorkflowBookingService(executor, "q", reservation.NewStore(), notifier)

			_, err := svc.CreateReservation(context.Background(), alice())
			assert.ErrorIs(t, err, tt.wantErr)
			notifier.AssertNotCalled(t, "ReservationBooked", mock.Anything)
		})
	}
}

func TestWorkflowBookingService_StartFailure(t *testing.T) {
	executor := new(mockExecutor)
	executor.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("temporal unreachable"))

	svc := NewWorkflowBookingService(executor, "q", reservation.NewStore(), nil)

	_, err := svc.CreateReservation(context.Background(), alice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start workflow")
}

func TestWorkflowBookingService_DeadlineExpiredWhileWaiting(t *testing.T) {
	executor := new(mockExecutor)
	executor.On("ExecuteWorkflow", mock.Anything, mock.Anything, workflows.BookingWorkflowName, mock.Anything).
		Return(workflowRunReturning(models.BookingWorkflowResult{},
			serviceerror.NewDeadlineExceeded("context deadline exceeded")), nil)

	notifier := new(mocks.MockNotifier)
	svc := NewWorkflowBookingService(executor, "q", reservation.NewStore(), notifier)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := svc.CreateReservation(ctx, alice())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	notifier.AssertNotCalled(t, "ReservationBooked", mock.Anything)
}

func TestWorkflowBookingService_DeadlineExpiredBeforeStart(t *testing.T) {
	executor := new(mockExecutor)
	executor.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewDeadlineExceeded("context deadline exceeded"))

	svc := NewWorkflowBookingService(executor, "q", reservation.NewStore(), nil)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := svc.CreateReservation(ctx, alice())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
