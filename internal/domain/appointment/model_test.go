package appointment

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "pending to approved", from: StatusPending, to: StatusApproved, want: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, want: true},
		{name: "approved is terminal", from: StatusApproved, to: StatusCancelled, want: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusApproved, want: false},
		{name: "no re-approve", from: StatusApproved, to: StatusApproved, want: false},
		{name: "pending to pending", from: StatusPending, to: StatusPending, want: false},
		{name: "unknown source", from: "weird", to: StatusApproved, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatusForAction(t *testing.T) {
	if st, ok := StatusForAction(ActionApprove); !ok || st != StatusApproved {
		t.Errorf("approve => %q, %v", st, ok)
	}
	if st, ok := StatusForAction(ActionCancel); !ok || st != StatusCancelled {
		t.Errorf("cancel => %q, %v", st, ok)
	}
	if _, ok := StatusForAction("delete"); ok {
		t.Error("delete must not be a valid action")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(StatusPending) {
		t.Error("pending is not terminal")
	}
	if !IsTerminal(StatusApproved) || !IsTerminal(StatusCancelled) {
		t.Error("approved and cancelled are terminal")
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusApproved, StatusCancelled} {
		if !IsValidStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if IsValidStatus("rejected") {
		t.Error("rejected is not part of the lifecycle")
	}
}

func TestDecideAs(t *testing.T) {
	pending := Appointment{ID: "a1", TeacherID: "tea-1", Status: StatusPending}

	if err := pending.DecideAs("tea-2", StatusApproved); !IsErrForbidden(err) {
		t.Errorf("another teacher's decision must be forbidden, got %v", err)
	}
	if err := pending.DecideAs("tea-1", StatusApproved); err != nil {
		t.Errorf("owner approving a pending appointment: %v", err)
	}

	approved := Appointment{ID: "a2", TeacherID: "tea-1", Status: StatusApproved}
	if err := approved.DecideAs("tea-1", StatusCancelled); !IsErrConflict(err) {
		t.Errorf("cancelling a terminal appointment must conflict, got %v", err)
	}

	cancelled := Appointment{ID: "a3", TeacherID: "tea-1", Status: StatusCancelled}
	if err := cancelled.DecideAs("tea-1", StatusApproved); !IsErrConflict(err) {
		t.Errorf("approving a terminal appointment must conflict, got %v", err)
	}
}

func TestBookInputTrim(t *testing.T) {
	in := BookInput{
		TeacherID: " t1 ",
		SlotID:    " s1 ",
		Date:      " 2024-06-01 ",
		Time:      " 10:00 ",
		Message:   "  hi  ",
	}
	in.Trim()
	if in.TeacherID != "t1" || in.SlotID != "s1" || in.Date != "2024-06-01" || in.Time != "10:00" || in.Message != "hi" {
		t.Errorf("Trim() left %+v", in)
	}
}

func TestBookInputTrimCapsMessage(t *testing.T) {
	in := BookInput{Message: strings.Repeat("x", MaxNoteLen+100)}
	in.Trim()
	if len(in.Message) != MaxNoteLen {
		t.Errorf("message length = %d, want %d", len(in.Message), MaxNoteLen)
	}
}

func TestBookInputTrimKeepsNoteValidUTF8(t *testing.T) {
	in := BookInput{Message: strings.Repeat("a", MaxNoteLen-1) + "日本"}
	in.Trim()
	if !utf8.ValidString(in.Message) {
		t.Error("capped note must stay valid UTF-8")
	}
	if utf8.RuneCountInString(in.Message) != MaxNoteLen {
		t.Errorf("rune count = %d, want %d", utf8.RuneCountInString(in.Message), MaxNoteLen)
	}
}
