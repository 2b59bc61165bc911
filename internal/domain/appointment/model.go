package appointment

import (
	"fmt"
	"strings"
	"time"

	"appointment-manager/backend/internal/utils"
)

// Lifecycle states. Approved and cancelled are terminal; nothing
// transitions out of them.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

const (
	ActionApprove = "approve"
	ActionCancel  = "cancel"
)

func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusCancelled
}

func IsTerminal(s string) bool {
	return s == StatusApproved || s == StatusCancelled
}

// StatusForAction maps a teacher decision to the target status.
func StatusForAction(action string) (string, bool) {
	switch action {
	case ActionApprove:
		return StatusApproved, true
	case ActionCancel:
		return StatusCancelled, true
	}
	return "", false
}

// CanTransition allows only pending -> approved and pending -> cancelled.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusCancelled
}

// Appointment is a student's booking request against a teacher's slot,
// stored in the "appointments" collection. Student and teacher names
// are denormalized so list views render without extra lookups.
type Appointment struct {
	ID          string    `firestore:"id" json:"id"`
	StudentID   string    `firestore:"studentId" json:"studentId"`
	StudentName string    `firestore:"studentName,omitempty" json:"studentName,omitempty"`
	TeacherID   string    `firestore:"teacherId" json:"teacherId"`
	TeacherName string    `firestore:"teacherName,omitempty" json:"teacherName,omitempty"`
	Date        string    `firestore:"date" json:"date"`
	Time        string    `firestore:"time" json:"time"`
	Message     string    `firestore:"message,omitempty" json:"message,omitempty"`
	Status      string    `firestore:"status" json:"status"`
	SlotID      string    `firestore:"slotId,omitempty" json:"slotId,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// DecideAs checks that callerUID owns the appointment and that the
// transition to next is legal. It runs inside the decision transaction
// against a fresh read, so a racing decision cannot slip past it.
func (a *Appointment) DecideAs(callerUID, next string) error {
	if a.TeacherID != callerUID {
		return fmt.Errorf("%w: appointment belongs to another teacher", ErrForbidden)
	}
	if !CanTransition(a.Status, next) {
		return fmt.Errorf("%w: appointment is already %s", ErrConflict, a.Status)
	}
	return nil
}

// MaxNoteLen caps the optional note a student attaches to a request.
const MaxNoteLen = 500

type BookInput struct {
	TeacherID string `json:"teacherId"`
	SlotID    string `json:"slotId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Message   string `json:"message,omitempty"`
}

func (in *BookInput) Trim() {
	in.TeacherID = strings.TrimSpace(in.TeacherID)
	in.SlotID = strings.TrimSpace(in.SlotID)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Message = utils.TrimMax(in.Message, MaxNoteLen)
}
