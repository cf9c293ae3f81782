package models

import "time"

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusConfirmed  RequestStatus = "confirmed"
	StatusWaitlisted RequestStatus = "waitlisted"
	StatusCancelled  RequestStatus = "cancelled"
)

type Request struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	ResourceID  string        `json:"resource_id"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	SubmittedAt time.Time     `json:"submitted_at"`
	Priority    int           `json:"priority"`
	Status      RequestStatus `json:"status"`
}

// Less is the strict total order used for both admission and waitlist
// promotion: priority class ascending, then submission time, then request ID
// so that requests stamped in the same instant still order deterministically.
func Less(a, b *Request) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.Before(b.SubmittedAt)
	}
	return a.ID < b.ID
}
