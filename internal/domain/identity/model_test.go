package identity

import (
	"testing"
)

func TestIsValidRole(t *testing.T) {
	for _, r := range []string{RoleStudent, RoleTeacher, RoleAdmin} {
		if !IsValidRole(r) {
			t.Errorf("%q should be valid", r)
		}
	}
	for _, r := range []string{"", "staff", "Student"} {
		if IsValidRole(r) {
			t.Errorf("%q should not be valid", r)
		}
	}
}

func TestRegisterInputTrim(t *testing.T) {
	in := RegisterInput{Name: "  Jane Doe ", Subject: " Math ", Role: " Student "}
	in.Trim()
	if in.Name != "Jane Doe" || in.Subject != "Math" {
		t.Errorf("Trim() left %+v", in)
	}
	if in.Role != "student" {
		t.Errorf("role must be lowercased, got %q", in.Role)
	}
}

func TestUpdateTeacherInputTrim(t *testing.T) {
	email := " new@school.test "
	name := " New Name "
	in := UpdateTeacherInput{Email: &email, Name: &name}
	in.Trim()
	if *in.Email != "new@school.test" || *in.Name != "New Name" {
		t.Errorf("Trim() left %q / %q", *in.Email, *in.Name)
	}
}
