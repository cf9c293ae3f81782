package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smartcampus/allocator/internal/models"
	"github.com/smartcampus/allocator/internal/store"
)

var (
	ErrUnknownUser      = errors.New("user not found")
	ErrUnknownResource  = errors.New("resource not found")
	ErrInvalidRole      = errors.New("role must be 'faculty' or 'student'")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrStartInPast      = errors.New("cannot book a resource in the past")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotOwner         = errors.New("only the booking owner may cancel it")
	ErrNoStateStore     = errors.New("state persistence is not configured")
)

// Outcome is the result of an admission attempt.
type Outcome struct {
	Status    models.RequestStatus `json:"status"`
	BookingID string               `json:"booking_id,omitempty"`
	RequestID string               `json:"request_id"`
	Preempted []string             `json:"preempted,omitempty"`
}

// UserSchedule is a single user's view: confirmed bookings by start time and
// waitlisted requests in priority order.
type UserSchedule struct {
	User     models.User      `json:"user"`
	Bookings []models.Booking `json:"bookings"`
	Waiting  []models.Request `json:"waiting"`
}

// StateStore persists and recovers the engine's full entity set.
type StateStore interface {
	Save(snap store.Snapshot) error
	Load() (store.Snapshot, error)
}

// EventPublisher pushes allocation events to the message broker.
// *rabbitmq.Publisher satisfies it; nil disables publishing.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// AuditTrail records allocation decisions durably; nil disables auditing.
type AuditTrail interface {
	Record(ctx context.Context, kind string, req *models.Request, bookingID, detail string) error
}

type AllocationService interface {
	RegisterUser(ctx context.Context, name string, role models.Role) (*models.User, error)
	RegisterResource(ctx context.Context, name string, capacity int, location, description string) (*models.Resource, error)
	SubmitRequest(ctx context.Context, userID, resourceID string, start, end time.Time) (*Outcome, error)
	CancelBooking(ctx context.Context, bookingID, userID string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	ListResources(ctx context.Context) ([]models.Resource, error)
	ListBookings(ctx context.Context, resourceID string) ([]models.Booking, error)
	ListWaiting(ctx context.Context, resourceID string) ([]models.Request, error)
	UserSchedule(ctx context.Context, userID string) (*UserSchedule, error)
	SaveState(ctx context.Context) error
	LoadState(ctx context.Context) error
}

type allocationService struct {
	// mu serializes every operation: submit, cancel, promotion and snapshot
	// save/load all see a consistent entity set.
	mu sync.Mutex

	store     *store.Store
	states    StateStore
	publisher EventPublisher
	trail     AuditTrail

	now func() time.Time
}

func NewAllocationService(st *store.Store, states StateStore, publisher EventPublisher, trail AuditTrail) AllocationService {
	return &allocationService{
		store:     st,
		states:    states,
		publisher: publisher,
		trail:     trail,
		now:       time.Now,
	}
}

func (s *allocationService) RegisterUser(ctx context.Context, name string, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Role:      role,
		CreatedAt: s.now(),
	}
	s.store.AddUser(user)
	return user, nil
}

func (s *allocationService) RegisterResource(ctx context.Context, name string, capacity int, location, description string) (*models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resource := &models.Resource{
		ID:          uuid.NewString(),
		Name:        name,
		Capacity:    capacity,
		Location:    location,
		Description: description,
		CreatedAt:   s.now(),
	}
	s.store.AddResource(resource)
	return resource, nil
}

// SubmitRequest runs the admission algorithm: validate, detect conflicts,
// then admit, preempt or waitlist. Nothing is mutated until validation has
// fully passed, so a failed submission leaves no trace in the store.
func (s *allocationService) SubmitRequest(ctx context.Context, userID, resourceID string, start, end time.Time) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.User(userID)
	if !ok {
		return nil, ErrUnknownUser
	}
	if _, ok := s.store.Resource(resourceID); !ok {
		return nil, ErrUnknownResource
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}
	now := s.now()
	if start.Before(now) {
		return nil, ErrStartInPast
	}

	req := &models.Request{
		ID:          uuid.NewString(),
		UserID:      userID,
		ResourceID:  resourceID,
		StartTime:   start,
		EndTime:     end,
		SubmittedAt: now,
		Priority:    user.Role.PriorityClass(),
		Status:      models.StatusPending,
	}
	s.store.AddRequest(req)

	conflicts := conflicting(s.store.BookingsFor(resourceID), start, end)

	if len(conflicts) == 0 {
		booking := s.admit(ctx, req)
		s.record(ctx, "booking.confirmed", req, booking.ID, "admitted without conflict")
		return &Outcome{Status: models.StatusConfirmed, BookingID: booking.ID, RequestID: req.ID}, nil
	}

	// Preemption is permitted only when the requester strictly outranks the
	// owner of every conflicting booking, on priority class alone.
	for _, b := range conflicts {
		owner, ok := s.store.User(b.UserID)
		if !ok || req.Priority >= owner.Role.PriorityClass() {
			s.store.Enqueue(req)
			s.record(ctx, "booking.waitlisted", req, "", "conflicts with equal or higher priority booking")
			return &Outcome{Status: models.StatusWaitlisted, RequestID: req.ID}, nil
		}
	}

	preempted := make([]string, 0, len(conflicts))
	for _, b := range conflicts {
		displaced := s.removeBooking(b.ID)
		owner, _ := s.store.User(displaced.UserID)

		// The displaced owner re-enters the waitlist as a fresh request,
		// stamped at preemption time but keeping their priority class.
		requeued := &models.Request{
			ID:          uuid.NewString(),
			UserID:      displaced.UserID,
			ResourceID:  displaced.ResourceID,
			StartTime:   displaced.StartTime,
			EndTime:     displaced.EndTime,
			SubmittedAt: now,
			Priority:    owner.Role.PriorityClass(),
			Status:      models.StatusPending,
		}
		s.store.AddRequest(requeued)
		s.store.Enqueue(requeued)
		preempted = append(preempted, owner.Name)
		s.record(ctx, "booking.preempted", requeued, displaced.ID, fmt.Sprintf("displaced by request %s", req.ID))
	}

	booking := s.admit(ctx, req)
	s.record(ctx, "booking.confirmed", req, booking.ID, fmt.Sprintf("admitted after preempting %d booking(s)", len(preempted)))

	// A preempted range may be wider than the new booking, so removal can
	// still free room for someone on the waitlist.
	s.promote(ctx)

	return &Outcome{Status: models.StatusConfirmed, BookingID: booking.ID, RequestID: req.ID, Preempted: preempted}, nil
}

// CancelBooking removes a booking on behalf of its owner and runs the
// promotion pass over the waitlist.
func (s *allocationService) CancelBooking(ctx context.Context, bookingID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.store.Booking(bookingID)
	if !ok {
		return ErrBookingNotFound
	}
	if booking.UserID != userID {
		return ErrNotOwner
	}

	removed := s.removeBooking(bookingID)
	if req, ok := s.store.Request(removed.RequestID); ok {
		s.record(ctx, "booking.cancelled", req, removed.ID, "cancelled by owner")
	}

	s.promote(ctx)
	return nil
}

func (s *allocationService) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.store.Users()
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = *u
	}
	return out, nil
}

func (s *allocationService) ListResources(ctx context.Context) ([]models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resources := s.store.Resources()
	out := make([]models.Resource, len(resources))
	for i, r := range resources {
		out[i] = *r
	}
	return out, nil
}

// ListBookings returns bookings ordered by start time, optionally scoped to
// one resource.
func (s *allocationService) ListBookings(ctx context.Context, resourceID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bookings []*models.Booking
	if resourceID == "" {
		bookings = s.store.Bookings()
	} else {
		if _, ok := s.store.Resource(resourceID); !ok {
			return nil, ErrUnknownResource
		}
		bookings = s.store.BookingsFor(resourceID)
	}

	out := make([]models.Booking, len(bookings))
	for i, b := range bookings {
		out[i] = *b
	}
	return out, nil
}

// ListWaiting returns waitlisted requests in priority order, optionally
// scoped to one resource.
func (s *allocationService) ListWaiting(ctx context.Context, resourceID string) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resourceID != "" {
		if _, ok := s.store.Resource(resourceID); !ok {
			return nil, ErrUnknownResource
		}
	}

	waiting := s.store.Waiting(resourceID)
	out := make([]models.Request, len(waiting))
	for i, req := range waiting {
		out[i] = *req
	}
	return out, nil
}

func (s *allocationService) UserSchedule(ctx context.Context, userID string) (*UserSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.User(userID)
	if !ok {
		return nil, ErrUnknownUser
	}

	schedule := &UserSchedule{User: *user}
	for _, b := range s.store.Bookings() {
		if b.UserID == userID {
			schedule.Bookings = append(schedule.Bookings, *b)
		}
	}
	for _, req := range s.store.Waiting("") {
		if req.UserID == userID {
			schedule.Waiting = append(schedule.Waiting, *req)
		}
	}
	return schedule, nil
}

func (s *allocationService) SaveState(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.states == nil {
		return ErrNoStateStore
	}
	return s.states.Save(s.store.Export(s.now()))
}

func (s *allocationService) LoadState(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.states == nil {
		return ErrNoStateStore
	}

	snap, err := s.states.Load()
	if err != nil {
		return err
	}
	restored, err := store.Restore(snap)
	if err != nil {
		return err
	}
	s.store = restored
	return nil
}

// admit turns a request into a confirmed booking. Callers have already
// established that the range is conflict-free.
func (s *allocationService) admit(ctx context.Context, req *models.Request) *models.Booking {
	booking := &models.Booking{
		ID:          uuid.NewString(),
		RequestID:   req.ID,
		UserID:      req.UserID,
		ResourceID:  req.ResourceID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ConfirmedAt: s.now(),
	}
	s.store.AddBooking(booking)
	req.Status = models.StatusConfirmed
	return booking
}

// removeBooking drops a booking from the store and marks its originating
// request cancelled. Used by both the cancellation and preemption paths.
func (s *allocationService) removeBooking(id string) *models.Booking {
	booking, _ := s.store.RemoveBooking(id)
	if req, ok := s.store.Request(booking.RequestID); ok {
		req.Status = models.StatusCancelled
	}
	return booking
}

// promote drains the waitlist in priority order and admits every request
// whose range no longer conflicts. Admitting never frees capacity, so a
// single pass is complete; entries that still conflict keep their original
// priority and arrival stamp.
func (s *allocationService) promote(ctx context.Context) {
	for _, req := range s.store.Waiting("") {
		if len(conflicting(s.store.BookingsFor(req.ResourceID), req.StartTime, req.EndTime)) > 0 {
			continue
		}
		s.store.Dequeue(req.ID)
		booking := s.admit(ctx, req)
		s.record(ctx, "booking.promoted", req, booking.ID, "promoted from waitlist")
	}
}

// conflicting returns the subset of allocs whose half-open ranges intersect
// [start,end).
func conflicting(allocs []*models.Booking, start, end time.Time) []*models.Booking {
	var out []*models.Booking
	for _, b := range allocs {
		if b.OverlapsRange(start, end) {
			out = append(out, b)
		}
	}
	return out
}

// record emits an allocation event to the audit trail and the message
// broker. Both are best-effort collaborators: failures are logged, never
// propagated into the allocation outcome.
func (s *allocationService) record(ctx context.Context, kind string, req *models.Request, bookingID, detail string) {
	if s.trail != nil {
		if err := s.trail.Record(ctx, kind, req, bookingID, detail); err != nil {
			log.Printf("[AllocationService] audit record failed: %v", err)
		}
	}
	if s.publisher != nil {
		payload := map[string]any{
			"kind":        kind,
			"request_id":  req.ID,
			"user_id":     req.UserID,
			"resource_id": req.ResourceID,
			"booking_id":  bookingID,
			"start_time":  req.StartTime,
			"end_time":    req.EndTime,
			"detail":      detail,
		}
		if err := s.publisher.Publish(kind, payload); err != nil {
			log.Printf("[AllocationService] publish %s failed: %v", kind, err)
		}
	}
}
