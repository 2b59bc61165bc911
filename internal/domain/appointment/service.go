package appointment

import (
	"context"
	"fmt"
	"time"

	"appointment-manager/backend/internal/domain/availability"
	"appointment-manager/backend/internal/domain/identity"
	"appointment-manager/backend/internal/domain/teacherstatus"
)

// UserDirectory is the slice of the identity store the scheduler reads.
type UserDirectory interface {
	Get(ctx context.Context, uid string) (*identity.User, error)
}

// StatusReader resolves a teacher's booking gate.
type StatusReader interface {
	Get(ctx context.Context, teacherID string) (*teacherstatus.Status, error)
}

type Service struct {
	repo       *Repo
	users      UserDirectory
	availRepo  *availability.Repo
	statusRepo StatusReader
}

func NewService(repo *Repo, users UserDirectory, availRepo *availability.Repo, statusRepo StatusReader) *Service {
	return &Service{repo: repo, users: users, availRepo: availRepo, statusRepo: statusRepo}
}

// Book creates a pending appointment for the calling student. All the
// gates the UI used to enforce live here: the student must be approved,
// the teacher must exist and be bookable, and the slot is consumed in
// the same transaction that inserts the appointment.
func (s *Service) Book(ctx context.Context, callerUID string, in BookInput) (*Appointment, error) {
	in.Trim()
	if in.TeacherID == "" || in.SlotID == "" {
		return nil, fmt.Errorf("%w: teacherId and slotId are required", ErrBadRequest)
	}
	if in.Date == "" || in.Time == "" {
		return nil, fmt.Errorf("%w: date and time are required", ErrBadRequest)
	}

	student, err := s.users.Get(ctx, callerUID)
	if err != nil {
		if identity.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: no student profile for caller", ErrForbidden)
		}
		return nil, err
	}
	if student.Role != identity.RoleStudent {
		return nil, fmt.Errorf("%w: only students can book appointments", ErrForbidden)
	}
	if !student.Approved {
		return nil, fmt.Errorf("%w: account is pending admin approval", ErrForbidden)
	}

	teacher, err := s.users.Get(ctx, in.TeacherID)
	if err != nil {
		if identity.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: teacher not found", ErrNotFound)
		}
		return nil, err
	}
	if teacher.Role != identity.RoleTeacher {
		return nil, fmt.Errorf("%w: %s is not a teacher", ErrBadRequest, in.TeacherID)
	}

	st, err := s.statusRepo.Get(ctx, in.TeacherID)
	if err != nil {
		return nil, err
	}
	if !st.Bookable() {
		return nil, fmt.Errorf("%w: teacher is not accepting appointments", ErrConflict)
	}

	now := time.Now().UTC()
	a := Appointment{
		StudentID:   callerUID,
		StudentName: student.Name,
		TeacherID:   teacher.UID,
		TeacherName: teacher.Name,
		Date:        in.Date,
		Time:        in.Time,
		Message:     in.Message,
		Status:      StatusPending,
		SlotID:      in.SlotID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.repo.BookWithSlot(ctx, s.availRepo.SlotRef(in.TeacherID, in.SlotID), a)
}

// Decide applies a teacher's approve/cancel to a pending appointment.
// Ownership and the terminal-state guard are checked transactionally in
// the repo; terminal appointments never transition again.
func (s *Service) Decide(ctx context.Context, callerUID, appointmentID, action string) (*Appointment, error) {
	next, ok := StatusForAction(action)
	if !ok {
		return nil, fmt.Errorf("%w: action must be approve or cancel", ErrBadRequest)
	}
	return s.repo.Transition(ctx, appointmentID, callerUID, next)
}

func (s *Service) ListForStudent(ctx context.Context, studentID string) ([]Appointment, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *Service) ListForTeacher(ctx context.Context, teacherID string) ([]Appointment, error) {
	return s.repo.ListByTeacher(ctx, teacherID)
}

// ListAll feeds the admin appointment log.
func (s *Service) ListAll(ctx context.Context, limit int) ([]Appointment, error) {
	return s.repo.ListAll(ctx, limit)
}

// AdminDelete removes an appointment record. The consumed slot stays
// consumed; the admin path is record cleanup, not a status transition.
func (s *Service) AdminDelete(ctx context.Context, appointmentID string) error {
	if _, err := s.repo.Get(ctx, appointmentID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, appointmentID)
}
