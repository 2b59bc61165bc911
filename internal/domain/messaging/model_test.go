package messaging

import (
	"strings"
	"testing"
)

func TestThreadID(t *testing.T) {
	if got := ThreadID("tea-1", "stu-1"); got != "tea-1_stu-1" {
		t.Errorf("ThreadID = %q", got)
	}
}

func TestParticipant(t *testing.T) {
	th := Thread{TeacherID: "tea-1", StudentID: "stu-1"}

	sender, ok := th.Participant("tea-1")
	if !ok || sender != SenderTeacher {
		t.Errorf("teacher side => %q, %v", sender, ok)
	}
	sender, ok = th.Participant("stu-1")
	if !ok || sender != SenderStudent {
		t.Errorf("student side => %q, %v", sender, ok)
	}
	if _, ok := th.Participant("someone-else"); ok {
		t.Error("outsider must not be a participant")
	}
}

func TestAppendInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "ok", text: "hello"},
		{name: "empty", text: "", wantErr: true},
		{name: "at limit", text: strings.Repeat("a", MaxMessageLen)},
		{name: "over limit", text: strings.Repeat("a", MaxMessageLen+1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := AppendInput{Text: tt.text}
			err := in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsErrBadRequest(err) {
				t.Errorf("validation failures must be bad requests, got %v", err)
			}
		})
	}
}

func TestAppendInputTrim(t *testing.T) {
	in := AppendInput{Text: "  hi there  "}
	in.Trim()
	if in.Text != "hi there" {
		t.Errorf("Trim() left %q", in.Text)
	}
}
