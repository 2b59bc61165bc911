package availability

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Slot is one open time window a teacher offers, stored under
// availability/{teacherId}/slots. Booking marks it consumed; slots are
// otherwise never mutated in place.
type Slot struct {
	ID        string    `firestore:"id" json:"id"`
	TeacherID string    `firestore:"teacherId" json:"teacherId"`
	Date      string    `firestore:"date" json:"date"` // "2006-01-02"
	Time      string    `firestore:"time" json:"time"` // "HH:MM"
	Booked    bool      `firestore:"booked" json:"booked"`
	BookedBy  string    `firestore:"bookedBy,omitempty" json:"bookedBy,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

type AddSlotInput struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (in *AddSlotInput) Trim() {
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
}

func (in AddSlotInput) Validate() error {
	if in.Date == "" || in.Time == "" {
		return fmt.Errorf("%w: date and time are required", ErrBadRequest)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrBadRequest)
	}
	if !isValidTimeFormat(in.Time) {
		return fmt.Errorf("%w: time must be HH:MM format", ErrBadRequest)
	}
	return nil
}

var timeFormatRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

func isValidTimeFormat(t string) bool {
	return timeFormatRegex.MatchString(t)
}
