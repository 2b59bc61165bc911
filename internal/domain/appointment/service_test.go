package appointment

import (
	"context"
	"fmt"
	"testing"

	"appointment-manager/backend/internal/domain/identity"
	"appointment-manager/backend/internal/domain/teacherstatus"
)

type fakeDirectory map[string]identity.User

func (f fakeDirectory) Get(_ context.Context, uid string) (*identity.User, error) {
	u, ok := f[uid]
	if !ok {
		return nil, fmt.Errorf("%w: user not found", identity.ErrNotFound)
	}
	return &u, nil
}

type fakeStatuses map[string]teacherstatus.Status

func (f fakeStatuses) Get(_ context.Context, teacherID string) (*teacherstatus.Status, error) {
	st, ok := f[teacherID]
	if !ok {
		return teacherstatus.Default(teacherID), nil
	}
	return &st, nil
}

func schedulerFixture() *Service {
	users := fakeDirectory{
		"stu-ok":      {UID: "stu-ok", Role: identity.RoleStudent, Approved: true, Name: "Ok Student"},
		"stu-pending": {UID: "stu-pending", Role: identity.RoleStudent, Approved: false},
		"tea-1":       {UID: "tea-1", Role: identity.RoleTeacher, Name: "Teacher One"},
		"tea-away":    {UID: "tea-away", Role: identity.RoleTeacher, Name: "Away Teacher"},
		"adm-1":       {UID: "adm-1", Role: identity.RoleAdmin, Approved: true},
	}
	statuses := fakeStatuses{
		"tea-away": {TeacherID: "tea-away", Available: true, OnLeave: true},
	}
	return NewService(nil, users, nil, statuses)
}

func bookInput(teacherID string) BookInput {
	return BookInput{TeacherID: teacherID, SlotID: "s1", Date: "2024-06-01", Time: "10:00"}
}

func TestBookRejectsUnapprovedStudent(t *testing.T) {
	s := schedulerFixture()
	_, err := s.Book(context.Background(), "stu-pending", bookInput("tea-1"))
	if !IsErrForbidden(err) {
		t.Errorf("unapproved student must be forbidden, got %v", err)
	}
}

func TestBookRejectsCallerWithoutProfile(t *testing.T) {
	s := schedulerFixture()
	_, err := s.Book(context.Background(), "ghost", bookInput("tea-1"))
	if !IsErrForbidden(err) {
		t.Errorf("caller without a profile must be forbidden, got %v", err)
	}
}

func TestBookRejectsNonStudentCaller(t *testing.T) {
	s := schedulerFixture()
	_, err := s.Book(context.Background(), "tea-1", bookInput("tea-away"))
	if !IsErrForbidden(err) {
		t.Errorf("non-student caller must be forbidden, got %v", err)
	}
}

func TestBookRejectsTeacherOnLeave(t *testing.T) {
	s := schedulerFixture()
	_, err := s.Book(context.Background(), "stu-ok", bookInput("tea-away"))
	if !IsErrConflict(err) {
		t.Errorf("teacher on leave must reject booking with conflict, got %v", err)
	}
}

func TestBookRejectsMissingTeacher(t *testing.T) {
	s := schedulerFixture()
	_, err := s.Book(context.Background(), "stu-ok", bookInput("nobody"))
	if !IsErrNotFound(err) {
		t.Errorf("missing teacher must be not found, got %v", err)
	}
}

func TestBookRejectsNonTeacherTarget(t *testing.T) {
	s := schedulerFixture()
	_, err := s.Book(context.Background(), "stu-ok", bookInput("adm-1"))
	if !IsErrBadRequest(err) {
		t.Errorf("booking an admin must be a bad request, got %v", err)
	}
}

func TestBookRejectsMissingFields(t *testing.T) {
	s := schedulerFixture()

	_, err := s.Book(context.Background(), "stu-ok", BookInput{Date: "2024-06-01", Time: "10:00"})
	if !IsErrBadRequest(err) {
		t.Errorf("missing teacherId/slotId must be a bad request, got %v", err)
	}

	_, err = s.Book(context.Background(), "stu-ok", BookInput{TeacherID: "tea-1", SlotID: "s1"})
	if !IsErrBadRequest(err) {
		t.Errorf("missing date/time must be a bad request, got %v", err)
	}
}

func TestDecideRejectsUnknownAction(t *testing.T) {
	s := schedulerFixture()
	_, err := s.Decide(context.Background(), "tea-1", "a1", "delete")
	if !IsErrBadRequest(err) {
		t.Errorf("unknown action must be a bad request, got %v", err)
	}
}
