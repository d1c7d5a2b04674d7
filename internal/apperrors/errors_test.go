package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindHTTPStatus(t *testing.T) {
	tests := map[Kind]int{
		KindBadRequest:   http.StatusBadRequest,
		KindValidation:   http.StatusUnprocessableEntity,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindNotFound:     http.StatusNotFound,
		KindInternal:     http.StatusInternalServerError,
		Kind("other"):    http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := kind.HTTPStatus(); got != want {
			t.Errorf("%s: got %d, want %d", kind, got, want)
		}
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("update user: %w", Forbidden("You cannot update another user's information"))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected wrapped forbidden to match sentinel")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("forbidden must not match not found")
	}
}

func TestFromWrapsForeignErrors(t *testing.T) {
	cause := errors.New("connection reset")
	e := From(cause)
	if e.Kind != KindInternal {
		t.Fatalf("expected internal kind, got %s", e.Kind)
	}
	if !errors.Is(e, cause) {
		t.Fatalf("expected cause to be preserved")
	}
	if e.Message != "internal error" {
		t.Fatalf("cause leaked into message: %q", e.Message)
	}
	if From(nil) != nil {
		t.Fatalf("From(nil) should be nil")
	}
}

func TestFieldValidation(t *testing.T) {
	e := Field("email", "The email has already been taken.")
	if KindOf(e) != KindValidation {
		t.Fatalf("expected validation kind")
	}
	if e.Fields["email"] == "" {
		t.Fatalf("expected email field message")
	}
}
