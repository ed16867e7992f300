package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cx-tal-miterani/lodging-booking/internal/models"
)

// apiClient talks to the booking HTTP API
type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string, httpClient *http.Client) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// apiError is a non-2xx reply from the server
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

func (c *apiClient) checkAvailability(ctx context.Context, arrivalDate string, durationDays int) (*models.AvailabilityResponse, error) {
	q := url.Values{}
	q.Set("arrivalDate", arrivalDate)
	q.Set("durationDays", strconv.Itoa(durationDays))

	var out models.AvailabilityResponse
	if err := c.do(ctx, http.MethodGet, "/api/availability?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) createReservation(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, error) {
	var out models.Reservation
	if err := c.do(ctx, http.MethodPost, "/api/reservations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) listReservations(ctx context.Context) (*models.ReservationListResponse, error) {
	var out models.ReservationListResponse
	if err := c.do(ctx, http.MethodGet, "/api/reservations", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &apiError{Status: resp.StatusCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func printScheduled(w io.Writer, r *models.Reservation) {
	fmt.Fprintln(w, "\n------Appointment Scheduled------")
	printDetails(w, r)
}

func printAll(w io.Writer, list *models.ReservationListResponse) {
	if list.Count == 0 {
		fmt.Fprintln(w, "No appointments have been made yet.")
		return
	}
	fmt.Fprintln(w, "\n------All Appointments------")
	for i, r := range list.Reservations {
		fmt.Fprintf(w, "\nAppointment %d:\n", i+1)
		printDetails(w, r)
		fmt.Fprintf(w, "Booked Dates: %s\n", strings.Join(r.OccupiedDates, ", "))
	}
}

func printDetails(w io.Writer, r *models.Reservation) {
	fmt.Fprintf(w, "Name: %s\n", r.OwnerName)
	fmt.Fprintf(w, "Contact Number: %s\n", r.ContactNumber)
	fmt.Fprintf(w, "Guests: %d\n", r.GuestCount)
	fmt.Fprintf(w, "Length of Stay: %d days\n", r.DurationDays)
	fmt.Fprintf(w, "Arrival Date: %s\n", r.ArrivalDate)
	fmt.Fprintf(w, "Departure Date: %s\n", r.DepartureDate)
}

func printAvailability(w io.Writer, a *models.AvailabilityResponse) {
	if a.Available {
		fmt.Fprintf(w, "%s to %s is available (%d nights).\n", a.ArrivalDate, a.DepartureDate, a.DurationDays)
		return
	}
	fmt.Fprintln(w, "The date range is not available. Please choose another start date.")
	if len(a.ConflictingDates) > 0 {
		fmt.Fprintf(w, "Already booked: %s\n", strings.Join(a.ConflictingDates, ", "))
	}
}
