package models

import "time"

type Booking struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	UserID      string    `json:"user_id"`
	ResourceID  string    `json:"resource_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Ranges that merely touch at an endpoint do not
// conflict. Every availability check in the system goes through this one
// definition.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsRange reports whether [start,end) intersects the booking's range.
func (b *Booking) OverlapsRange(start, end time.Time) bool {
	return Overlaps(start, end, b.StartTime, b.EndTime)
}
