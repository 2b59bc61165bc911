package teacherstatus

import (
	"time"
)

// Status is the per-teacher booking gate, stored in the "teacherStatus"
// collection with the teacher uid as document id. A missing document
// reads as the default: available, not on leave.
type Status struct {
	TeacherID string    `firestore:"teacherId" json:"teacherId"`
	Available bool      `firestore:"available" json:"available"`
	OnLeave   bool      `firestore:"onLeave" json:"onLeave"`
	UpdatedAt time.Time `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func Default(teacherID string) *Status {
	return &Status{
		TeacherID: teacherID,
		Available: true,
		OnLeave:   false,
	}
}

// Bookable reports whether students may book this teacher right now.
func (s *Status) Bookable() bool {
	return s.Available && !s.OnLeave
}

// UpdateInput merges only the provided fields; unspecified fields keep
// their stored values.
type UpdateInput struct {
	Available *bool `json:"available,omitempty"`
	OnLeave   *bool `json:"onLeave,omitempty"`
}

func (in UpdateInput) Empty() bool {
	return in.Available == nil && in.OnLeave == nil
}
