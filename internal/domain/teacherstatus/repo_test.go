package teacherstatus

import (
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(status.Error(codes.NotFound, "no document")) {
		t.Error("grpc NotFound must read as absent")
	}
	if isNotFound(status.Error(codes.Unavailable, "backend down")) {
		t.Error("a transient failure must not read as absent")
	}
	if isNotFound(errors.New("plain failure")) {
		t.Error("an unknown error must not read as absent")
	}
	if isNotFound(nil) {
		t.Error("nil is not an absence")
	}
}
