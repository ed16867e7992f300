package mocks

import (
	"context"

	"github.com/cx-tal-miterani/lodging-booking/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CheckAvailability(ctx context.Context, arrivalDate string, durationDays int) (*models.AvailabilityResponse, error) {
	args := m.Called(ctx, arrivalDate, durationDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilityResponse), args.Error(1)
}

func (m *MockBookingService) CreateReservation(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockBookingService) ListReservations(ctx context.Context) []*models.Reservation {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*models.Reservation)
}

func (m *MockBookingService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

// MockNotifier records booking events
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ReservationBooked(r *models.Reservation) {
	m.Called(r)
}

func (m *MockNotifier) BookingRejected(arrivalDate string, durationDays int, conflictingDates []string) {
	m.Called(arrivalDate, durationDays, conflictingDates)
}
