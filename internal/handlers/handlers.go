package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cx-tal-miterani/lodging-booking/internal/config"
	"github.com/cx-tal-miterani/lodging-booking/internal/models"
	"github.com/cx-tal-miterani/lodging-booking/internal/reservation"
	"github.com/cx-tal-miterani/lodging-booking/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	bookingService service.BookingService
	validate       *validator.Validate
	bookingTimeout time.Duration
}

// Option configures a Handler
type Option func(*Handler)

// WithBookingTimeout sets how long a booking request may wait on the engine
func WithBookingTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.bookingTimeout = d
		}
	}
}

// NewHandler creates a new Handler instance
func NewHandler(bookingService service.BookingService, opts ...Option) *Handler {
	h := &Handler{
		bookingService: bookingService,
		validate:       validator.New(),
		bookingTimeout: config.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps booking errors onto HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reservation.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, reservation.ErrUnavailable):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, reservation.ErrNotFound):
		respondError(w, http.StatusNotFound, "Reservation not found")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "Booking timed out")
	default:
		log.Printf("booking service error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// validationMessage turns validator output into one readable line
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}

// CheckAvailability handles GET /api/availability?arrivalDate=MM/DD/YYYY&durationDays=N
func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := models.AvailabilityRequest{ArrivalDate: q.Get("arrivalDate")}
	if raw := q.Get("durationDays"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "durationDays must be an integer")
			return
		}
		req.DurationDays = n
	}

	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	resp, err := h.bookingService.CheckAvailability(r.Context(), req.ArrivalDate, req.DurationDays)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// CreateReservation handles POST /api/reservations
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.bookingTimeout)
	defer cancel()

	created, err := h.bookingService.CreateReservation(ctx, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListReservations handles GET /api/reservations
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	all := h.bookingService.ListReservations(r.Context())
	if all == nil {
		all = []*models.Reservation{}
	}
	respondJSON(w, http.StatusOK, models.ReservationListResponse{
		Reservations: all,
		Count:        len(all),
	})
}

// GetReservation handles GET /api/reservations/{id}
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	res, err := h.bookingService.GetReservation(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
