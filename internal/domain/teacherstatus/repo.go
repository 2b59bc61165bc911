package teacherstatus

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) statuses() *firestore.CollectionRef {
	return r.fs.Collection("teacherStatus")
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// Get never fails on a missing document; absence means the default
// status. Any other read failure surfaces so a stored gate is never
// silently replaced by the bookable default.
func (r *Repo) Get(ctx context.Context, teacherID string) (*Status, error) {
	doc, err := r.statuses().Doc(teacherID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return Default(teacherID), nil
		}
		return nil, fmt.Errorf("failed to read teacher status: %w", err)
	}
	var st Status
	if err := doc.DataTo(&st); err != nil {
		return nil, fmt.Errorf("failed to parse teacher status: %w", err)
	}
	st.TeacherID = teacherID
	return &st, nil
}

// Set merges the given fields into the status document, creating it on
// first write.
func (r *Repo) Set(ctx context.Context, teacherID string, updates map[string]interface{}) (*Status, error) {
	updates["teacherId"] = teacherID
	if _, err := r.statuses().Doc(teacherID).Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update teacher status: %w", err)
	}
	return r.Get(ctx, teacherID)
}

func (r *Repo) Delete(ctx context.Context, teacherID string) error {
	if _, err := r.statuses().Doc(teacherID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete teacher status: %w", err)
	}
	return nil
}

// ListAll returns every stored status record; teachers without one are
// implicitly at the default and absent here.
func (r *Repo) ListAll(ctx context.Context) ([]Status, error) {
	iter := r.statuses().Documents(ctx)
	defer iter.Stop()

	out := []Status{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate teacher statuses: %w", err)
		}
		var st Status
		if err := doc.DataTo(&st); err != nil {
			continue
		}
		if st.TeacherID == "" {
			st.TeacherID = doc.Ref.ID
		}
		out = append(out, st)
	}
	return out, nil
}
