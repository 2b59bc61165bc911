// Package guard is the single role gate in front of every role-scoped
// route group. Each protected request is evaluated fresh against the
// identity directory; decisions are never cached across requests.
package guard

import (
	"context"
	"net/http"

	"appointment-manager/backend/internal/httpjson"
	"appointment-manager/backend/internal/middleware"
)

const (
	StateUnauthenticated = "unauthenticated"
	StateWrongRole       = "wrong-role"
	StateAuthorized      = "authorized"
)

const loginPath = "/auth/login"

// Directory resolves a uid to its role. An empty role with a nil error
// means the user exists in auth but has no directory record.
type Directory interface {
	Role(ctx context.Context, uid string) (string, error)
}

// DirectoryFunc adapts a plain function to the Directory interface.
type DirectoryFunc func(ctx context.Context, uid string) (string, error)

func (f DirectoryFunc) Role(ctx context.Context, uid string) (string, error) {
	return f(ctx, uid)
}

// Decision is the closed outcome of evaluating a caller against an
// expected role.
type Decision struct {
	State      string `json:"state"`
	Role       string `json:"role,omitempty"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

func (d Decision) Authorized() bool {
	return d.State == StateAuthorized
}

type Guard struct {
	dir Directory
}

func New(dir Directory) *Guard {
	return &Guard{dir: dir}
}

// Evaluate decides whether uid may enter the expectedRole area.
// Directory failures collapse to "no session" rather than surfacing as
// distinct errors, and a missing role sends the user back to login
// instead of a dangling destination.
func (g *Guard) Evaluate(ctx context.Context, uid, expectedRole string) Decision {
	if uid == "" {
		return Decision{State: StateUnauthenticated, RedirectTo: loginPath}
	}

	role, err := g.dir.Role(ctx, uid)
	if err != nil {
		return Decision{State: StateUnauthenticated, RedirectTo: loginPath}
	}
	if role == "" {
		return Decision{State: StateWrongRole, RedirectTo: loginPath}
	}
	if role != expectedRole {
		return Decision{State: StateWrongRole, Role: role, RedirectTo: "/" + role}
	}
	return Decision{State: StateAuthorized, Role: role}
}

// Require is chi middleware gating a role area. It expects the bearer
// token to already be verified by middleware.WithAuth.
func (g *Guard) Require(expectedRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := ""
			if au, ok := middleware.GetAuthUser(r.Context()); ok {
				uid = au.UID
			}

			d := g.Evaluate(r.Context(), uid, expectedRole)
			switch d.State {
			case StateAuthorized:
				next.ServeHTTP(w, r)
			case StateUnauthenticated:
				httpjson.Write(w, http.StatusUnauthorized, d)
			default:
				httpjson.Write(w, http.StatusForbidden, d)
			}
		})
	}
}
