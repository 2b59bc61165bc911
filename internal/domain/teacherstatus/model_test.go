package teacherstatus

import (
	"testing"
)

func TestDefault(t *testing.T) {
	st := Default("t-1")
	if st.TeacherID != "t-1" {
		t.Errorf("TeacherID = %q", st.TeacherID)
	}
	if !st.Available || st.OnLeave {
		t.Errorf("uninitialized status must be {available: true, onLeave: false}, got %+v", st)
	}
}

func TestBookable(t *testing.T) {
	tests := []struct {
		name      string
		available bool
		onLeave   bool
		want      bool
	}{
		{name: "default", available: true, onLeave: false, want: true},
		{name: "unavailable", available: false, onLeave: false, want: false},
		{name: "on leave", available: true, onLeave: true, want: false},
		{name: "both off", available: false, onLeave: true, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Status{TeacherID: "t-1", Available: tt.available, OnLeave: tt.onLeave}
			if got := st.Bookable(); got != tt.want {
				t.Errorf("Bookable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateInputEmpty(t *testing.T) {
	if !(UpdateInput{}).Empty() {
		t.Error("zero input must be empty")
	}
	v := true
	if (UpdateInput{OnLeave: &v}).Empty() {
		t.Error("input with onLeave set is not empty")
	}
	if (UpdateInput{Available: &v}).Empty() {
		t.Error("input with available set is not empty")
	}
}
