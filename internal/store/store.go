package store

import (
	"sort"

	"github.com/smartcampus/allocator/internal/models"
)

// Store owns every entity collection: users, resources, bookings, requests
// and the global waitlist. All other components hold identifiers and mutate
// through it. The store itself is not safe for concurrent use; the allocation
// service serializes access.
type Store struct {
	users     map[string]*models.User
	resources map[string]*models.Resource
	bookings  map[string]*models.Booking
	requests  map[string]*models.Request

	// allocations mirrors bookings per resource, kept sorted by start time.
	allocations map[string][]*models.Booking

	// waitlist holds the requests whose status is Waitlisted, and only those.
	waitlist []*models.Request
}

func New() *Store {
	return &Store{
		users:       make(map[string]*models.User),
		resources:   make(map[string]*models.Resource),
		bookings:    make(map[string]*models.Booking),
		requests:    make(map[string]*models.Request),
		allocations: make(map[string][]*models.Booking),
	}
}

// --- Users ---

func (s *Store) AddUser(u *models.User) {
	s.users[u.ID] = u
}

func (s *Store) User(id string) (*models.User, bool) {
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) Users() []*models.User {
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- Resources ---

func (s *Store) AddResource(r *models.Resource) {
	s.resources[r.ID] = r
	if _, ok := s.allocations[r.ID]; !ok {
		s.allocations[r.ID] = nil
	}
}

func (s *Store) Resource(id string) (*models.Resource, bool) {
	r, ok := s.resources[id]
	return r, ok
}

func (s *Store) Resources() []*models.Resource {
	out := make([]*models.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- Requests ---

func (s *Store) AddRequest(req *models.Request) {
	s.requests[req.ID] = req
}

func (s *Store) Request(id string) (*models.Request, bool) {
	req, ok := s.requests[id]
	return req, ok
}

func (s *Store) Requests() []*models.Request {
	out := make([]*models.Request, 0, len(s.requests))
	for _, req := range s.requests {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- Bookings ---

// AddBooking inserts the booking into the global index and its resource's
// allocation set as one logical operation.
func (s *Store) AddBooking(b *models.Booking) {
	s.bookings[b.ID] = b
	allocs := append(s.allocations[b.ResourceID], b)
	sort.Slice(allocs, func(i, j int) bool { return allocs[i].StartTime.Before(allocs[j].StartTime) })
	s.allocations[b.ResourceID] = allocs
}

// RemoveBooking drops the booking from both the global index and its
// resource's allocation set.
func (s *Store) RemoveBooking(id string) (*models.Booking, bool) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, false
	}
	delete(s.bookings, id)

	allocs := s.allocations[b.ResourceID]
	for i, other := range allocs {
		if other.ID == id {
			s.allocations[b.ResourceID] = append(allocs[:i], allocs[i+1:]...)
			break
		}
	}
	return b, true
}

func (s *Store) Booking(id string) (*models.Booking, bool) {
	b, ok := s.bookings[id]
	return b, ok
}

// Bookings returns every booking ordered by start time.
func (s *Store) Bookings() []*models.Booking {
	out := make([]*models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// BookingsFor returns the resource's current allocations ordered by start
// time. The returned slice is a copy; callers must not hold booking pointers
// past the current operation.
func (s *Store) BookingsFor(resourceID string) []*models.Booking {
	allocs := s.allocations[resourceID]
	out := make([]*models.Booking, len(allocs))
	copy(out, allocs)
	return out
}

// --- Waitlist ---

// Enqueue marks the request Waitlisted and appends it to the global waitlist.
func (s *Store) Enqueue(req *models.Request) {
	req.Status = models.StatusWaitlisted
	s.waitlist = append(s.waitlist, req)
}

// Dequeue removes the request from the waitlist without touching its status;
// the caller decides the transition (Confirmed on promotion).
func (s *Store) Dequeue(id string) {
	for i, req := range s.waitlist {
		if req.ID == id {
			s.waitlist = append(s.waitlist[:i], s.waitlist[i+1:]...)
			return
		}
	}
}

// Waiting returns the waitlisted requests in priority order. Pass an empty
// resourceID for the full list.
func (s *Store) Waiting(resourceID string) []*models.Request {
	out := make([]*models.Request, 0, len(s.waitlist))
	for _, req := range s.waitlist {
		if resourceID == "" || req.ResourceID == resourceID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return models.Less(out[i], out[j]) })
	return out
}
