package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cx-tal-miterani/lodging-booking/internal/handlers"
	"github.com/cx-tal-miterani/lodging-booking/internal/models"
	"github.com/cx-tal-miterani/lodging-booking/internal/reservation"
	"github.com/cx-tal-miterani/lodging-booking/internal/router"
	"github.com/cx-tal-miterani/lodging-booking/internal/service"
	"github.com/cx-tal-miterani/lodging-booking/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *apiClient {
	t.Helper()
	hub := websocket.NewHub()
	svc := service.NewBookingService(reservation.NewStore(), reservation.RealClock{}, hub)
	srv := httptest.NewServer(router.SetupRouter(handlers.NewHandler(svc), hub))
	t.Cleanup(srv.Close)
	return newAPIClient(srv.URL+"/", srv.Client())
}

func TestClient_BookAndList(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	r, err := c.createReservation(ctx, &models.CreateReservationRequest{
		OwnerName: "Alice", ContactNumber: "555", GuestCount: 2, DurationDays: 3, ArrivalDate: "01/01/2024",
	})
	require.NoError(t, err)
	assert.Equal(t, "01/04/2024", r.DepartureDate)

	_, err = c.createReservation(ctx, &models.CreateReservationRequest{
		OwnerName: "Bob", GuestCount: 1, DurationDays: 2, ArrivalDate: "01/03/2024",
	})
	var apiErr *apiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	list, err := c.listReservations(ctx)
	require.NoError(t, err)

	var out bytes.Buffer
	printAll(&out, list)
	assert.Contains(t, out.String(), "Appointment 1:")
	assert.Contains(t, out.String(), "Length of Stay: 3 days")
	assert.Contains(t, out.String(), "Departure Date: 01/04/2024")
	assert.Contains(t, out.String(), "Booked Dates: 01/01/2024, 01/02/2024, 01/03/2024")
	assert.NotContains(t, out.String(), "Bob")
}

func TestClient_CheckAvailability(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	a, err := c.checkAvailability(ctx, "01/01/2024", 2)
	require.NoError(t, err)
	assert.True(t, a.Available)

	_, err = c.checkAvailability(ctx, "02/30/2024", 2)
	var apiErr *apiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestPrintAll_Empty(t *testing.T) {
	var out bytes.Buffer
	printAll(&out, &models.ReservationListResponse{})
	assert.Equal(t, "No appointments have been made yet.\n", out.String())
}

func TestPrintAvailability_Conflict(t *testing.T) {
	var out bytes.Buffer
	printAvailability(&out, &models.AvailabilityResponse{ConflictingDates: []string{"01/03/2024"}})
	assert.Contains(t, out.String(), "not available")
	assert.Contains(t, out.String(), "01/03/2024")
}
