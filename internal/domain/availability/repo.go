package availability

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

func (r *Repo) slots(teacherID string) *firestore.CollectionRef {
	return r.fs.Collection("availability").Doc(teacherID).Collection("slots")
}

// SlotRef exposes the document ref so the booking transaction can read
// and consume the slot atomically with the appointment insert.
func (r *Repo) SlotRef(teacherID, slotID string) *firestore.DocumentRef {
	return r.slots(teacherID).Doc(slotID)
}

func (r *Repo) Add(ctx context.Context, s Slot) (*Slot, error) {
	ref := r.slots(s.TeacherID).NewDoc()
	s.ID = ref.ID
	if _, err := ref.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	return &s, nil
}

func (r *Repo) Get(ctx context.Context, teacherID, slotID string) (*Slot, error) {
	doc, err := r.slots(teacherID).Doc(slotID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: slot not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	var s Slot
	if err := doc.DataTo(&s); err != nil {
		return nil, fmt.Errorf("failed to parse slot: %w", err)
	}
	s.ID = doc.Ref.ID
	s.TeacherID = teacherID
	return &s, nil
}

func (r *Repo) List(ctx context.Context, teacherID string, openOnly bool) ([]Slot, error) {
	q := r.slots(teacherID).Query
	if openOnly {
		q = q.Where("booked", "==", false)
	}
	q = q.OrderBy("date", firestore.Asc).OrderBy("time", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := []Slot{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate slots: %w", err)
		}
		var s Slot
		if err := doc.DataTo(&s); err != nil {
			continue
		}
		s.ID = doc.Ref.ID
		s.TeacherID = teacherID
		out = append(out, s)
	}
	return out, nil
}

// ExistsAt reports whether the teacher already declared a slot at the
// given date and time.
func (r *Repo) ExistsAt(ctx context.Context, teacherID, date, tm string) (bool, error) {
	iter := r.slots(teacherID).
		Where("date", "==", date).
		Where("time", "==", tm).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return true, nil
}

func (r *Repo) Delete(ctx context.Context, teacherID, slotID string) error {
	if _, err := r.slots(teacherID).Doc(slotID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

// DeleteAll removes a teacher's whole slot subcollection. Used by the
// account-deletion cascade.
func (r *Repo) DeleteAll(ctx context.Context, teacherID string) error {
	iter := r.slots(teacherID).Documents(ctx)
	defer iter.Stop()

	bw := r.fs.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to iterate slots: %w", err)
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return fmt.Errorf("failed to delete slot: %w", err)
		}
	}
	bw.End()
	return nil
}
