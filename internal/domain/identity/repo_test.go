package identity

import (
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(status.Error(codes.NotFound, "no document")) {
		t.Error("grpc NotFound must read as a missing user")
	}
	if isNotFound(status.Error(codes.Unavailable, "backend down")) {
		t.Error("a transient failure must not read as a missing user")
	}
	if isNotFound(errors.New("plain failure")) {
		t.Error("an unknown error must not read as a missing user")
	}
}

func TestIsAlreadyExists(t *testing.T) {
	if !isAlreadyExists(status.Error(codes.AlreadyExists, "document exists")) {
		t.Error("grpc AlreadyExists must read as a duplicate")
	}
	if isAlreadyExists(status.Error(codes.Unavailable, "backend down")) {
		t.Error("a transient failure must not read as a duplicate")
	}
	if isAlreadyExists(nil) {
		t.Error("nil is not a duplicate")
	}
}
