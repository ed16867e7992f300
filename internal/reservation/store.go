package reservation

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store holds every reservation made during the process lifetime.
// It only grows; there is no cancellation.
type Store struct {
	mu           sync.RWMutex
	reservations []*Reservation        // booking order
	byDay        map[Date]*Reservation // occupied night -> reservation
	byID         map[uuid.UUID]*Reservation
}

func NewStore() *Store {
	return &Store{
		byDay: make(map[Date]*Reservation),
		byID:  make(map[uuid.UUID]*Reservation),
	}
}

// IsAvailable reports whether none of the nights from arrival to
// arrival+durationDays-1 is taken. A stay may start on another stay's
// departure date.
func (s *Store) IsAvailable(arrival Date, durationDays int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.conflictLocked(arrival, durationDays) == nil
}

// Conflict returns the first existing reservation holding one of the
// candidate nights, or nil when the range is free.
func (s *Store) Conflict(arrival Date, durationDays int) *Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.conflictLocked(arrival, durationDays)
}

// ConflictingDates returns the candidate nights that are already taken,
// in ascending order.
func (s *Store) ConflictingDates(arrival Date, durationDays int) []Date {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var taken []Date
	for _, d := range DateRange(arrival, durationDays) {
		if _, ok := s.byDay[d]; ok {
			taken = append(taken, d)
		}
	}
	return taken
}

func (s *Store) conflictLocked(arrival Date, durationDays int) *Reservation {
	for _, d := range DateRange(arrival, durationDays) {
		if existing, ok := s.byDay[d]; ok {
			return existing
		}
	}
	return nil
}

// Book appends r without checking availability. Callers must have seen
// IsAvailable return true for r's range; use Reserve when other writers exist.
func (s *Store) Book(r *Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookLocked(r)
}

func (s *Store) bookLocked(r *Reservation) {
	s.reservations = append(s.reservations, r)
	s.byID[r.ID()] = r
	for _, d := range r.OccupiedDates() {
		// first booking keeps the night if a caller skipped the check
		if _, taken := s.byDay[d]; !taken {
			s.byDay[d] = r
		}
	}
}

// Reserve checks availability and books r inside one critical section.
func (s *Store) Reserve(ctx context.Context, r *Reservation) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflictLocked(r.ArrivalDate(), r.DurationDays()) != nil {
		return ErrUnavailable
	}
	s.bookLocked(r)
	return nil
}

// ListAll returns all reservations in booking order. The returned slice is a
// copy; the reservations themselves are immutable.
func (s *Store) ListAll() []*Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out
}

func (s *Store) Get(id uuid.UUID) (*Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reservations)
}
