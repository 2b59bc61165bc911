package teacherstatus

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

func (s *Service) Get(ctx context.Context, teacherID string) (*Status, error) {
	if teacherID == "" {
		return nil, fmt.Errorf("%w: teacherId is required", ErrBadRequest)
	}
	return s.repo.Get(ctx, teacherID)
}

// Set merges the provided flags; only the owning teacher may change
// their status.
func (s *Service) Set(ctx context.Context, callerUID, teacherID string, in UpdateInput) (*Status, error) {
	if teacherID == "" {
		return nil, fmt.Errorf("%w: teacherId is required", ErrBadRequest)
	}
	if callerUID != teacherID {
		return nil, fmt.Errorf("%w: only the owning teacher can change status", ErrForbidden)
	}
	if in.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrBadRequest)
	}

	updates := map[string]interface{}{
		"updatedAt": time.Now().UTC(),
	}
	if in.Available != nil {
		updates["available"] = *in.Available
	}
	if in.OnLeave != nil {
		updates["onLeave"] = *in.OnLeave
	}
	return s.repo.Set(ctx, teacherID, updates)
}

func (s *Service) ListAll(ctx context.Context) ([]Status, error) {
	return s.repo.ListAll(ctx)
}
