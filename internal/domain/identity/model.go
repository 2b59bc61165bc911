package identity

import (
	"strings"
	"time"
)

// Roles a user document may carry. Admins are never self-registered;
// they are bootstrapped with cmd/set-role.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

func IsValidRole(r string) bool {
	return r == RoleStudent || r == RoleTeacher || r == RoleAdmin
}

// User is the identity directory record, stored in the "users"
// collection with the Firebase uid as document id.
type User struct {
	UID      string `firestore:"uid" json:"uid"`
	Email    string `firestore:"email" json:"email"`
	Name     string `firestore:"name,omitempty" json:"name,omitempty"`
	Subject  string `firestore:"subject,omitempty" json:"subject,omitempty"`
	Role     string `firestore:"role" json:"role"`
	Approved bool   `firestore:"approved" json:"approved"`

	NameLower    string   `firestore:"nameLower,omitempty" json:"-"`
	SearchTokens []string `firestore:"searchTokens,omitempty" json:"-"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// RegisterInput is what a freshly authenticated user submits to create
// their directory record. Email comes from the verified token, not the body.
type RegisterInput struct {
	Name    string `json:"name,omitempty"`
	Subject string `json:"subject,omitempty"`
	Role    string `json:"role"`
}

func (in *RegisterInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Role = strings.TrimSpace(strings.ToLower(in.Role))
}

// TeacherInput is the admin-managed teacher record payload.
type TeacherInput struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Subject string `json:"subject,omitempty"`
}

func (in *TeacherInput) Trim() {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Subject = strings.TrimSpace(in.Subject)
}

type UpdateTeacherInput struct {
	Email   *string `json:"email,omitempty"`
	Name    *string `json:"name,omitempty"`
	Subject *string `json:"subject,omitempty"`
}

func (in *UpdateTeacherInput) Trim() {
	if in.Email != nil {
		*in.Email = strings.TrimSpace(*in.Email)
	}
	if in.Name != nil {
		*in.Name = strings.TrimSpace(*in.Name)
	}
	if in.Subject != nil {
		*in.Subject = strings.TrimSpace(*in.Subject)
	}
}

// Stats mirrors the admin dashboard counters.
type Stats struct {
	Students int64 `json:"students"`
	Teachers int64 `json:"teachers"`
}
