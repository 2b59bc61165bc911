package messaging

import (
	"context"
	"fmt"
	"time"

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

func (r *Repo) threads() *firestore.CollectionRef {
	return r.fs.Collection("messages")
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// OpenOrCreate returns the existing thread untouched, or creates an
// empty one. The transaction keeps two first-contact requests from
// clobbering each other.
func (r *Repo) OpenOrCreate(ctx context.Context, teacherID, studentID string) (*Thread, error) {
	id := ThreadID(teacherID, studentID)
	ref := r.threads().Doc(id)

	var out Thread
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err == nil && doc.Exists() {
			if err := doc.DataTo(&out); err != nil {
				return fmt.Errorf("failed to parse thread: %w", err)
			}
			out.ID = id
			return nil
		}

		now := time.Now().UTC()
		out = Thread{
			ID:        id,
			TeacherID: teacherID,
			StudentID: studentID,
			Messages:  []Message{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Create(ref, out)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open thread: %w", err)
	}
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	return &out, nil
}

func (r *Repo) Get(ctx context.Context, threadID string) (*Thread, error) {
	doc, err := r.threads().Doc(threadID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: thread not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read thread: %w", err)
	}
	var t Thread
	if err := doc.DataTo(&t); err != nil {
		return nil, fmt.Errorf("failed to parse thread: %w", err)
	}
	t.ID = doc.Ref.ID
	if t.Messages == nil {
		t.Messages = []Message{}
	}
	return &t, nil
}

// Append adds one message to the ordered sequence. ArrayUnion keeps the
// write a single server-side append.
func (r *Repo) Append(ctx context.Context, threadID string, msg Message) error {
	_, err := r.threads().Doc(threadID).Update(ctx, []firestore.Update{
		{Path: "messages", Value: firestore.ArrayUnion(msg)},
		{Path: "updatedAt", Value: msg.Timestamp},
	})
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

func (r *Repo) ListByStudent(ctx context.Context, studentID string) ([]Thread, error) {
	q := r.threads().Where("studentId", "==", studentID)
	return r.collect(q.Documents(ctx))
}

func (r *Repo) ListByTeacher(ctx context.Context, teacherID string) ([]Thread, error) {
	q := r.threads().Where("teacherId", "==", teacherID)
	return r.collect(q.Documents(ctx))
}

func (r *Repo) collect(iter *firestore.DocumentIterator) ([]Thread, error) {
	defer iter.Stop()

	out := []Thread{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate threads: %w", err)
		}
		var t Thread
		if err := doc.DataTo(&t); err != nil {
			continue
		}
		if t.ID == "" {
			t.ID = doc.Ref.ID
		}
		if t.Messages == nil {
			t.Messages = []Message{}
		}
		out = append(out, t)
	}
	return out, nil
}
