package store

import (
	"fmt"
	"time"

	"github.com/smartcampus/allocator/internal/models"
)

// Snapshot is the store's full entity set in a flat, serializable form.
// Timestamps encode as RFC 3339 through encoding/json. The waitlist is not
// stored: it is re-derived at restore time from the requests whose status is
// Waitlisted.
type Snapshot struct {
	SavedAt   time.Time         `json:"saved_at"`
	Users     []models.User     `json:"users"`
	Resources []models.Resource `json:"resources"`
	Bookings  []models.Booking  `json:"bookings"`
	Requests  []models.Request  `json:"requests"`
}

// Export copies the current entity set into a Snapshot.
func (s *Store) Export(now time.Time) Snapshot {
	snap := Snapshot{SavedAt: now}
	for _, u := range s.Users() {
		snap.Users = append(snap.Users, *u)
	}
	for _, r := range s.Resources() {
		snap.Resources = append(snap.Resources, *r)
	}
	for _, b := range s.Bookings() {
		snap.Bookings = append(snap.Bookings, *b)
	}
	for _, req := range s.Requests() {
		snap.Requests = append(snap.Requests, *req)
	}
	return snap
}

// Restore builds a fresh store from a snapshot, validating entity invariants
// and referential integrity before anything is admitted into the registries.
func Restore(snap Snapshot) (*Store, error) {
	s := New()

	for i := range snap.Users {
		u := snap.Users[i]
		if u.ID == "" {
			return nil, fmt.Errorf("restore user %q: missing id", u.Name)
		}
		s.AddUser(&u)
	}

	for i := range snap.Resources {
		r := snap.Resources[i]
		if r.ID == "" {
			return nil, fmt.Errorf("restore resource %q: missing id", r.Name)
		}
		s.AddResource(&r)
	}

	for i := range snap.Bookings {
		b := snap.Bookings[i]
		if !b.StartTime.Before(b.EndTime) {
			return nil, fmt.Errorf("restore booking %s: start must precede end", b.ID)
		}
		if _, ok := s.User(b.UserID); !ok {
			return nil, fmt.Errorf("restore booking %s: unknown user %s", b.ID, b.UserID)
		}
		if _, ok := s.Resource(b.ResourceID); !ok {
			return nil, fmt.Errorf("restore booking %s: unknown resource %s", b.ID, b.ResourceID)
		}
		for _, other := range s.BookingsFor(b.ResourceID) {
			if other.OverlapsRange(b.StartTime, b.EndTime) {
				return nil, fmt.Errorf("restore booking %s: overlaps booking %s on resource %s", b.ID, other.ID, b.ResourceID)
			}
		}
		s.AddBooking(&b)
	}

	for i := range snap.Requests {
		req := snap.Requests[i]
		if !req.StartTime.Before(req.EndTime) {
			return nil, fmt.Errorf("restore request %s: start must precede end", req.ID)
		}
		if _, ok := s.User(req.UserID); !ok {
			return nil, fmt.Errorf("restore request %s: unknown user %s", req.ID, req.UserID)
		}
		if _, ok := s.Resource(req.ResourceID); !ok {
			return nil, fmt.Errorf("restore request %s: unknown resource %s", req.ID, req.ResourceID)
		}
		s.AddRequest(&req)
		if req.Status == models.StatusWaitlisted {
			s.waitlist = append(s.waitlist, &req)
		}
	}

	return s, nil
}
