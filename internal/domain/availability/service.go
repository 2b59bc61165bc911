package availability

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// AddSlot declares a new open slot. Only the owning teacher may add
// slots to their namespace, and (date, time) must be unique per teacher.
func (s *Service) AddSlot(ctx context.Context, callerUID, teacherID string, in AddSlotInput) (*Slot, error) {
	if callerUID == "" || teacherID == "" {
		return nil, fmt.Errorf("%w: teacherId is required", ErrBadRequest)
	}
	if callerUID != teacherID {
		return nil, fmt.Errorf("%w: only the owning teacher can add slots", ErrForbidden)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsAt(ctx, teacherID, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: slot %s %s already exists", ErrConflict, in.Date, in.Time)
	}

	return s.repo.Add(ctx, Slot{
		TeacherID: teacherID,
		Date:      in.Date,
		Time:      in.Time,
		Booked:    false,
		CreatedAt: time.Now().UTC(),
	})
}

// ListSlots is open to any authenticated caller; students browse a
// teacher's slots before booking.
func (s *Service) ListSlots(ctx context.Context, teacherID string, openOnly bool) ([]Slot, error) {
	if teacherID == "" {
		return nil, fmt.Errorf("%w: teacherId is required", ErrBadRequest)
	}
	return s.repo.List(ctx, teacherID, openOnly)
}

func (s *Service) RemoveSlot(ctx context.Context, callerUID, teacherID, slotID string) error {
	if teacherID == "" || slotID == "" {
		return fmt.Errorf("%w: teacherId and slotId are required", ErrBadRequest)
	}
	if callerUID != teacherID {
		return fmt.Errorf("%w: only the owning teacher can remove slots", ErrForbidden)
	}
	if _, err := s.repo.Get(ctx, teacherID, slotID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, teacherID, slotID)
}
