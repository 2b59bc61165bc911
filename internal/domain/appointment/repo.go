package appointment

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

func (r *Repo) appointments() *firestore.CollectionRef {
	return r.fs.Collection("appointments")
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// slotDoc is the subset of the availability record the booking
// transaction needs.
type slotDoc struct {
	Date   string `firestore:"date"`
	Time   string `firestore:"time"`
	Booked bool   `firestore:"booked"`
}

// BookWithSlot atomically consumes the slot and inserts the
// appointment. The transaction re-reads the slot so two students racing
// for it cannot both win.
func (r *Repo) BookWithSlot(ctx context.Context, slotRef *firestore.DocumentRef, a Appointment) (*Appointment, error) {
	ref := r.appointments().NewDoc()
	a.ID = ref.ID

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(slotRef)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: slot not found", ErrNotFound)
			}
			return fmt.Errorf("failed to read slot: %w", err)
		}
		var s slotDoc
		if err := doc.DataTo(&s); err != nil {
			return fmt.Errorf("failed to parse slot: %w", err)
		}
		if s.Booked {
			return fmt.Errorf("%w: slot is already booked", ErrConflict)
		}
		if s.Date != a.Date || s.Time != a.Time {
			return fmt.Errorf("%w: date/time does not match the slot", ErrBadRequest)
		}

		if err := tx.Update(slotRef, []firestore.Update{
			{Path: "booked", Value: true},
			{Path: "bookedBy", Value: a.StudentID},
		}); err != nil {
			return fmt.Errorf("failed to consume slot: %w", err)
		}
		return tx.Create(ref, a)
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Appointment, error) {
	doc, err := r.appointments().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: appointment not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read appointment: %w", err)
	}
	var a Appointment
	if err := doc.DataTo(&a); err != nil {
		return nil, fmt.Errorf("failed to parse appointment: %w", err)
	}
	if a.ID == "" {
		a.ID = doc.Ref.ID
	}
	return &a, nil
}

// Transition applies a teacher decision inside a transaction. The
// ownership and state checks run against the transactional read, so two
// racing decisions cannot both pass and a delete between read and write
// aborts the whole attempt.
func (r *Repo) Transition(ctx context.Context, id, callerUID, next string) (*Appointment, error) {
	ref := r.appointments().Doc(id)

	var out Appointment
	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: appointment not found", ErrNotFound)
			}
			return fmt.Errorf("failed to read appointment: %w", err)
		}
		if err := doc.DataTo(&out); err != nil {
			return fmt.Errorf("failed to parse appointment: %w", err)
		}
		if out.ID == "" {
			out.ID = ref.ID
		}
		if err := out.DecideAs(callerUID, next); err != nil {
			return err
		}
		out.Status = next
		out.UpdatedAt = time.Now().UTC()
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: out.Status},
			{Path: "updatedAt", Value: out.UpdatedAt},
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) ListByStudent(ctx context.Context, studentID string) ([]Appointment, error) {
	q := r.appointments().Where("studentId", "==", studentID)
	return r.collect(q.Documents(ctx))
}

func (r *Repo) ListByTeacher(ctx context.Context, teacherID string) ([]Appointment, error) {
	q := r.appointments().Where("teacherId", "==", teacherID)
	return r.collect(q.Documents(ctx))
}

func (r *Repo) ListAll(ctx context.Context, limit int) ([]Appointment, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	q := r.appointments().OrderBy("createdAt", firestore.Desc).Limit(limit)
	return r.collect(q.Documents(ctx))
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.appointments().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

func (r *Repo) collect(iter *firestore.DocumentIterator) ([]Appointment, error) {
	defer iter.Stop()

	out := []Appointment{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate appointments: %w", err)
		}
		var a Appointment
		if err := doc.DataTo(&a); err != nil {
			continue
		}
		if a.ID == "" {
			a.ID = doc.Ref.ID
		}
		out = append(out, a)
	}
	return out, nil
}
