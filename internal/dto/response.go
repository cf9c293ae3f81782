package dto

import (
	"time"

	"github.com/smartcampus/allocator/internal/models"
	"github.com/smartcampus/allocator/internal/service"
)

type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	Priority  int         `json:"priority"`
	CreatedAt time.Time   `json:"created_at"`
}

type ResourceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	UserID      string    `json:"user_id"`
	ResourceID  string    `json:"resource_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type RequestResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	ResourceID  string               `json:"resource_id"`
	StartTime   time.Time            `json:"start_time"`
	EndTime     time.Time            `json:"end_time"`
	SubmittedAt time.Time            `json:"submitted_at"`
	Priority    int                  `json:"priority"`
	Status      models.RequestStatus `json:"status"`
}

type OutcomeResponse struct {
	Status    models.RequestStatus `json:"status"`
	BookingID string               `json:"booking_id,omitempty"`
	RequestID string               `json:"request_id"`
	Preempted []string             `json:"preempted,omitempty"`
}

type UserScheduleResponse struct {
	User     UserResponse      `json:"user"`
	Bookings []BookingResponse `json:"bookings"`
	Waiting  []RequestResponse `json:"waiting"`
}

type StateResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		Priority:  u.Role.PriorityClass(),
		CreatedAt: u.CreatedAt,
	}
}

func ToResourceResponse(r *models.Resource) ResourceResponse {
	return ResourceResponse{
		ID:          r.ID,
		Name:        r.Name,
		Capacity:    r.Capacity,
		Location:    r.Location,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		RequestID:   b.RequestID,
		UserID:      b.UserID,
		ResourceID:  b.ResourceID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		ConfirmedAt: b.ConfirmedAt,
	}
}

func ToRequestResponse(r *models.Request) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		ResourceID:  r.ResourceID,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		SubmittedAt: r.SubmittedAt,
		Priority:    r.Priority,
		Status:      r.Status,
	}
}

func ToOutcomeResponse(out *service.Outcome) OutcomeResponse {
	return OutcomeResponse{
		Status:    out.Status,
		BookingID: out.BookingID,
		RequestID: out.RequestID,
		Preempted: out.Preempted,
	}
}

func ToUserScheduleResponse(s *service.UserSchedule) UserScheduleResponse {
	resp := UserScheduleResponse{User: ToUserResponse(&s.User)}
	for i := range s.Bookings {
		resp.Bookings = append(resp.Bookings, ToBookingResponse(&s.Bookings[i]))
	}
	for i := range s.Waiting {
		resp.Waiting = append(resp.Waiting, ToRequestResponse(&s.Waiting[i]))
	}
	return resp
}
