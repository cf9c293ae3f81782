package dto

import "time"

type CreateUserRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=faculty student"`
}

type CreateResourceRequest struct {
	Name        string `json:"name" validate:"required"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type CreateBookingRequest struct {
	UserID    string    `json:"user_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

type CancelBookingRequest struct {
	UserID string `json:"user_id" validate:"required"`
}
