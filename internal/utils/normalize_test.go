package utils

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeNameLower(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Jane   Doe ", "jane doe"},
		{"ALICE", "alice"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeNameLower(tt.in); got != tt.want {
			t.Errorf("NormalizeNameLower(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldASCII(t *testing.T) {
	if got := FoldASCII("José"); got != "Jose" {
		t.Errorf("FoldASCII = %q", got)
	}
}

func TestSearchTokens(t *testing.T) {
	got := SearchTokens("Jane Doe", "jane@school.test")
	want := []string{"jane doe", "jane", "doe", "jane@school.test"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchTokens = %v, want %v", got, want)
	}
}

func TestSearchTokensDedup(t *testing.T) {
	got := SearchTokens("bob", "bob")
	if len(got) != 1 || got[0] != "bob" {
		t.Errorf("SearchTokens = %v", got)
	}
}

func TestTrimMax(t *testing.T) {
	if got := TrimMax("  hello  ", 3); got != "hel" {
		t.Errorf("TrimMax = %q", got)
	}
	if got := TrimMax("hi", 10); got != "hi" {
		t.Errorf("TrimMax = %q", got)
	}
}

func TestTrimMaxCutsOnRuneBoundary(t *testing.T) {
	in := strings.Repeat("a", 499) + "日本"
	got := TrimMax(in, 500)
	if !utf8.ValidString(got) {
		t.Errorf("TrimMax produced invalid UTF-8: %q", got[490:])
	}
	if utf8.RuneCountInString(got) != 500 {
		t.Errorf("rune count = %d, want 500", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "日") {
		t.Errorf("truncation must keep the whole last rune, got suffix %q", got[495:])
	}
}
