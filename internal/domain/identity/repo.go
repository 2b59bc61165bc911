package identity

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
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

func (r *Repo) users() *firestore.CollectionRef {
	return r.fs.Collection("users")
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

func (r *Repo) Get(ctx context.Context, uid string) (*User, error) {
	doc, err := r.users().Doc(uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	var u User
	if err := doc.DataTo(&u); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	if u.UID == "" {
		u.UID = doc.Ref.ID
	}
	return &u, nil
}

// Create writes the document under the given uid. Firestore's
// conditional create is the authoritative duplicate check; the service's
// pre-read only gives a friendlier fast path.
func (r *Repo) Create(ctx context.Context, u User) (*User, error) {
	if _, err := r.users().Doc(u.UID).Create(ctx, u); err != nil {
		if isAlreadyExists(err) {
			return nil, fmt.Errorf("%w: account already registered", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

// CreateWithID stores an admin-provisioned record under a generated id
// (teachers added before they ever sign in).
func (r *Repo) CreateWithID(ctx context.Context, u User) (*User, error) {
	ref := r.users().NewDoc()
	u.UID = ref.ID
	if _, err := ref.Set(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

func (r *Repo) Update(ctx context.Context, uid string, updates map[string]interface{}) (*User, error) {
	if _, err := r.users().Doc(uid).Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return r.Get(ctx, uid)
}

func (r *Repo) Delete(ctx context.Context, uid string) error {
	if _, err := r.users().Doc(uid).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *Repo) ListByRole(ctx context.Context, role string, limit int) ([]User, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	q := r.users().Where("role", "==", role).Limit(limit)
	return r.collect(q.Documents(ctx))
}

func (r *Repo) ListPendingStudents(ctx context.Context) ([]User, error) {
	q := r.users().
		Where("role", "==", RoleStudent).
		Where("approved", "==", false)
	return r.collect(q.Documents(ctx))
}

// SearchByToken matches users of a role whose searchTokens contain the
// normalized term (name words, full name, email).
func (r *Repo) SearchByToken(ctx context.Context, role, token string, limit int) ([]User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.users().
		Where("role", "==", role).
		Where("searchTokens", "array-contains", token).
		Limit(limit)
	return r.collect(q.Documents(ctx))
}

func (r *Repo) CountByRole(ctx context.Context, role string) (int64, error) {
	q := r.users().Where("role", "==", role)
	ag := q.NewAggregationQuery().WithCount("all")
	res, err := ag.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	v, ok := res["all"]
	if !ok {
		return 0, fmt.Errorf("count result missing")
	}
	cnt, ok := v.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count result type")
	}
	return cnt.GetIntegerValue(), nil
}

func (r *Repo) collect(iter *firestore.DocumentIterator) ([]User, error) {
	defer iter.Stop()

	out := []User{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}
		var u User
		if err := doc.DataTo(&u); err != nil {
			continue
		}
		if u.UID == "" {
			u.UID = doc.Ref.ID
		}
		out = append(out, u)
	}
	return out, nil
}
