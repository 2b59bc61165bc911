package identity

import (
	"context"
	"fmt"
	"time"

	"appointment-manager/backend/internal/domain/availability"
	"appointment-manager/backend/internal/domain/teacherstatus"
	"appointment-manager/backend/internal/utils"
)

type Service struct {
	repo       *Repo
	availRepo  *availability.Repo
	statusRepo *teacherstatus.Repo
}

func NewService(repo *Repo, availRepo *availability.Repo, statusRepo *teacherstatus.Repo) *Service {
	return &Service{repo: repo, availRepo: availRepo, statusRepo: statusRepo}
}

// Register creates the directory record for an authenticated uid.
// Students start unapproved and stay locked out of booking until an
// admin approves them.
func (s *Service) Register(ctx context.Context, uid, email string, in RegisterInput) (*User, error) {
	if uid == "" || email == "" {
		return nil, fmt.Errorf("%w: authenticated session required", ErrBadRequest)
	}
	if in.Role != RoleStudent && in.Role != RoleTeacher {
		if in.Role == RoleAdmin {
			return nil, fmt.Errorf("%w: admin accounts cannot self-register", ErrForbidden)
		}
		return nil, fmt.Errorf("%w: role must be student or teacher", ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, uid); err == nil {
		return nil, fmt.Errorf("%w: account already registered", ErrConflict)
	}

	now := time.Now().UTC()
	u := User{
		UID:          uid,
		Email:        email,
		Name:         in.Name,
		Subject:      in.Subject,
		Role:         in.Role,
		Approved:     in.Role != RoleStudent,
		NameLower:    utils.NormalizeNameLower(in.Name),
		SearchTokens: utils.SearchTokens(in.Name, email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, u)
}

func (s *Service) Get(ctx context.Context, uid string) (*User, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	return s.repo.Get(ctx, uid)
}

// Role resolves the role of a uid for the access guard. A missing
// directory record reads as "no role", not as an error.
func (s *Service) Role(ctx context.Context, uid string) (string, error) {
	u, err := s.repo.Get(ctx, uid)
	if err != nil {
		if IsErrNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return u.Role, nil
}

func (s *Service) ListPendingStudents(ctx context.Context) ([]User, error) {
	return s.repo.ListPendingStudents(ctx)
}

func (s *Service) ApproveStudent(ctx context.Context, uid string) (*User, error) {
	u, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u.Role != RoleStudent {
		return nil, fmt.Errorf("%w: %s is not a student", ErrBadRequest, uid)
	}
	return s.repo.Update(ctx, uid, map[string]interface{}{
		"approved":  true,
		"updatedAt": time.Now().UTC(),
	})
}

// Delete removes a user and, for teachers, their availability slots and
// status record. Appointments and threads are kept for the admin log.
func (s *Service) Delete(ctx context.Context, uid string) error {
	u, err := s.repo.Get(ctx, uid)
	if err != nil {
		return err
	}
	if u.Role == RoleAdmin {
		return fmt.Errorf("%w: admin accounts cannot be deleted here", ErrForbidden)
	}
	if u.Role == RoleTeacher {
		if err := s.availRepo.DeleteAll(ctx, uid); err != nil {
			return err
		}
		if err := s.statusRepo.Delete(ctx, uid); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, uid)
}

func (s *Service) ListTeachers(ctx context.Context) ([]User, error) {
	return s.repo.ListByRole(ctx, RoleTeacher, 0)
}

// SearchTeachers matches the student-facing teacher search: empty query
// lists everyone, otherwise name/email tokens are matched.
func (s *Service) SearchTeachers(ctx context.Context, q string) ([]User, error) {
	token := utils.NormalizeNameLower(utils.FoldASCII(q))
	if token == "" {
		return s.repo.ListByRole(ctx, RoleTeacher, 0)
	}
	return s.repo.SearchByToken(ctx, RoleTeacher, token, 0)
}

func (s *Service) CreateTeacher(ctx context.Context, in TeacherInput) (*User, error) {
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrBadRequest)
	}
	now := time.Now().UTC()
	u := User{
		Email:        in.Email,
		Name:         in.Name,
		Subject:      in.Subject,
		Role:         RoleTeacher,
		Approved:     true,
		NameLower:    utils.NormalizeNameLower(in.Name),
		SearchTokens: utils.SearchTokens(in.Name, in.Email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.CreateWithID(ctx, u)
}

func (s *Service) UpdateTeacher(ctx context.Context, uid string, in UpdateTeacherInput) (*User, error) {
	u, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u.Role != RoleTeacher {
		return nil, fmt.Errorf("%w: %s is not a teacher", ErrBadRequest, uid)
	}

	updates := map[string]interface{}{
		"updatedAt": time.Now().UTC(),
	}
	email, name := u.Email, u.Name
	if in.Email != nil {
		if *in.Email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrBadRequest)
		}
		updates["email"] = *in.Email
		email = *in.Email
	}
	if in.Name != nil {
		updates["name"] = *in.Name
		name = *in.Name
	}
	if in.Subject != nil {
		updates["subject"] = *in.Subject
	}
	if in.Email != nil || in.Name != nil {
		updates["nameLower"] = utils.NormalizeNameLower(name)
		updates["searchTokens"] = utils.SearchTokens(name, email)
	}
	return s.repo.Update(ctx, uid, updates)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	students, err := s.repo.CountByRole(ctx, RoleStudent)
	if err != nil {
		return nil, err
	}
	teachers, err := s.repo.CountByRole(ctx, RoleTeacher)
	if err != nil {
		return nil, err
	}
	return &Stats{Students: students, Teachers: teachers}, nil
}
