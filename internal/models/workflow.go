package models

// BookingWorkflowInput represents input for the booking workflow
type BookingWorkflowInput struct {
	RequestID     string `json:"requestId"`
	OwnerName     string `json:"ownerName"`
	ContactNumber string `json:"contactNumber"`
	GuestCount    int    `json:"guestCount"`
	DurationDays  int    `json:"durationDays"`
	ArrivalDate   string `json:"arrivalDate"`
}

// BookingOutcome says why a booking did or did not go through
type BookingOutcome string

const (
	BookingOutcomeBooked       BookingOutcome = "booked"
	BookingOutcomeUnavailable  BookingOutcome = "unavailable"
	BookingOutcomeInvalidInput BookingOutcome = "invalid_input"
)

// BookingWorkflowResult is the result of the booking workflow
type BookingWorkflowResult struct {
	Outcome     BookingOutcome `json:"outcome"`
	Reservation *Reservation   `json:"reservation,omitempty"`
	Reason      string         `json:"reason,omitempty"`
}

// ReserveStayResult is returned by the ReserveStay activity
type ReserveStayResult struct {
	Success     bool           `json:"success"`
	Outcome     BookingOutcome `json:"outcome"`
	Reservation *Reservation   `json:"reservation,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// SendConfirmationInput is the input for the SendConfirmation activity
type SendConfirmationInput struct {
	RequestID     string `json:"requestId"`
	ReservationID string `json:"reservationId"`
	OwnerName     string `json:"ownerName"`
	ContactNumber string `json:"contactNumber"`
	ArrivalDate   string `json:"arrivalDate"`
	DepartureDate string `json:"departureDate"`
}
