package guard

import (
	"context"
	"errors"
	"testing"
)

func staticDir(roles map[string]string, err error) Directory {
	return DirectoryFunc(func(_ context.Context, uid string) (string, error) {
		if err != nil {
			return "", err
		}
		return roles[uid], nil
	})
}

func TestEvaluate(t *testing.T) {
	roles := map[string]string{
		"stu-1": "student",
		"tea-1": "teacher",
		"adm-1": "admin",
	}

	tests := []struct {
		name         string
		uid          string
		expectedRole string
		dirErr       error
		wantState    string
		wantRedirect string
		wantRole     string
	}{
		{
			name:         "no session",
			uid:          "",
			expectedRole: "student",
			wantState:    StateUnauthenticated,
			wantRedirect: "/auth/login",
		},
		{
			name:         "directory error reads as no session",
			uid:          "stu-1",
			expectedRole: "student",
			dirErr:       errors.New("store unavailable"),
			wantState:    StateUnauthenticated,
			wantRedirect: "/auth/login",
		},
		{
			name:         "no role goes back to login",
			uid:          "ghost",
			expectedRole: "student",
			wantState:    StateWrongRole,
			wantRedirect: "/auth/login",
		},
		{
			name:         "wrong role redirects to own area",
			uid:          "tea-1",
			expectedRole: "student",
			wantState:    StateWrongRole,
			wantRedirect: "/teacher",
			wantRole:     "teacher",
		},
		{
			name:         "student authorized",
			uid:          "stu-1",
			expectedRole: "student",
			wantState:    StateAuthorized,
			wantRole:     "student",
		},
		{
			name:         "admin authorized",
			uid:          "adm-1",
			expectedRole: "admin",
			wantState:    StateAuthorized,
			wantRole:     "admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(staticDir(roles, tt.dirErr))
			d := g.Evaluate(context.Background(), tt.uid, tt.expectedRole)
			if d.State != tt.wantState {
				t.Errorf("State = %q, want %q", d.State, tt.wantState)
			}
			if d.RedirectTo != tt.wantRedirect {
				t.Errorf("RedirectTo = %q, want %q", d.RedirectTo, tt.wantRedirect)
			}
			if d.Role != tt.wantRole {
				t.Errorf("Role = %q, want %q", d.Role, tt.wantRole)
			}
		})
	}
}

func TestDecisionAuthorized(t *testing.T) {
	if (Decision{State: StateWrongRole}).Authorized() {
		t.Error("wrong-role decision must not be authorized")
	}
	if !(Decision{State: StateAuthorized}).Authorized() {
		t.Error("authorized decision must report authorized")
	}
}
