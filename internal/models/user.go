package models

import "time"

type Role string

const (
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
)

// Priority classes, lower is served first. Unknown roles sort after everyone.
const (
	PriorityFaculty = 1
	PriorityStudent = 2
	PriorityUnknown = 3
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Role) Valid() bool {
	return r == RoleFaculty || r == RoleStudent
}

// PriorityClass maps a role to its allocation priority.
func (r Role) PriorityClass() int {
	switch r {
	case RoleFaculty:
		return PriorityFaculty
	case RoleStudent:
		return PriorityStudent
	default:
		return PriorityUnknown
	}
}
