package audit

import (
	"context"
	"time"

	"github.com/smartcampus/allocator/internal/models"
	"gorm.io/gorm"
)

// AllocationEvent is one row of the allocation audit trail: every admission,
// preemption, waitlisting, promotion and cancellation the engine commits.
type AllocationEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Kind       string    `gorm:"type:varchar(32);not null;index" json:"kind"`
	RequestID  string    `gorm:"not null;index" json:"request_id"`
	BookingID  string    `json:"booking_id,omitempty"`
	UserID     string    `gorm:"not null" json:"user_id"`
	ResourceID string    `gorm:"not null;index" json:"resource_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Record(ctx context.Context, kind string, req *models.Request, bookingID, detail string) error {
	event := &AllocationEvent{
		Kind:       kind,
		RequestID:  req.ID,
		BookingID:  bookingID,
		UserID:     req.UserID,
		ResourceID: req.ResourceID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Detail:     detail,
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// List returns the most recent events, newest first, optionally filtered by
// resource and kind.
func (r *Recorder) List(ctx context.Context, resourceID, kind string, limit int) ([]AllocationEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	q := r.db.WithContext(ctx).Model(&AllocationEvent{})
	if resourceID != "" {
		q = q.Where("resource_id = ?", resourceID)
	}
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var events []AllocationEvent
	if err := q.Order("id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
