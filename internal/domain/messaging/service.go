package messaging

import (
	"context"
	"fmt"
	"time"

	"appointment-manager/backend/internal/domain/identity"

	"github.com/google/uuid"
)

type Service struct {
	repo  *Repo
	users *identity.Repo
}

func NewService(repo *Repo, users *identity.Repo) *Service {
	return &Service{repo: repo, users: users}
}

// Open returns the thread between the teacher and student, creating it
// empty on first contact. The caller must be one of the participants.
func (s *Service) Open(ctx context.Context, callerUID, teacherID, studentID string) (*Thread, error) {
	if teacherID == "" || studentID == "" {
		return nil, fmt.Errorf("%w: teacherId and studentId are required", ErrBadRequest)
	}
	if callerUID != teacherID && callerUID != studentID {
		return nil, fmt.Errorf("%w: caller is not a thread participant", ErrForbidden)
	}

	teacher, err := s.users.Get(ctx, teacherID)
	if err != nil {
		if identity.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: teacher not found", ErrNotFound)
		}
		return nil, err
	}
	if teacher.Role != identity.RoleTeacher {
		return nil, fmt.Errorf("%w: %s is not a teacher", ErrBadRequest, teacherID)
	}

	return s.repo.OpenOrCreate(ctx, teacherID, studentID)
}

func (s *Service) Get(ctx context.Context, callerUID, threadID string) (*Thread, error) {
	t, err := s.repo.Get(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if _, ok := t.Participant(callerUID); !ok {
		return nil, fmt.Errorf("%w: caller is not a thread participant", ErrForbidden)
	}
	return t, nil
}

// Append adds the caller's message with a server-assigned timestamp.
// The sender tag comes from which side of the thread the caller is on.
func (s *Service) Append(ctx context.Context, callerUID, threadID string, in AppendInput) (*Message, error) {
	in.Trim()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.Get(ctx, threadID)
	if err != nil {
		return nil, err
	}
	sender, ok := t.Participant(callerUID)
	if !ok {
		return nil, fmt.Errorf("%w: caller is not a thread participant", ErrForbidden)
	}

	msg := Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      in.Text,
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.Append(ctx, threadID, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Service) ListForStudent(ctx context.Context, studentID string) ([]Thread, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *Service) ListForTeacher(ctx context.Context, teacherID string) ([]Thread, error) {
	return s.repo.ListByTeacher(ctx, teacherID)
}
