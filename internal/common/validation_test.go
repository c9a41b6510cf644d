package common

import (
	"errors"
	"strings"
	"testing"
)

func TestValidator_CollectsAllFailures(t *testing.T) {
	err := NewValidator().
		Field("file", "", Required).
		Field("mode", "turbo", OneOf("fast", "standard", "enhanced")).
		Err()

	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, must wrap ErrValidation", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "file is required") || !strings.Contains(msg, "mode must be one of") {
		t.Errorf("message missing a failure: %q", msg)
	}
}

func TestValidator_CleanRequest(t *testing.T) {
	err := NewValidator().
		Field("file", "report.pdf", Required, MaxLength(255)).
		Field("mode", "enhanced", OneOf("fast", "standard", "enhanced")).
		Err()
	if err != nil {
		t.Errorf("clean request rejected: %v", err)
	}
}

func TestOneOf_EmptyPasses(t *testing.T) {
	if err := OneOf("fast", "standard")("mode", ""); err != nil {
		t.Errorf("empty optional value rejected: %v", err)
	}
	if err := OneOf("fast", "standard")("mode", "FAST"); err != nil {
		t.Errorf("case-insensitive match rejected: %v", err)
	}
}

func TestMaxLength(t *testing.T) {
	if err := MaxLength(3)("name", "abcd"); err == nil {
		t.Error("overlong value accepted")
	}
	if err := MaxLength(3)("name", "abc"); err != nil {
		t.Errorf("value at limit rejected: %v", err)
	}
}

func TestUUIDField(t *testing.T) {
	if err := UUIDField("id", "not-a-uuid"); err == nil {
		t.Error("garbage id accepted")
	}
	if err := UUIDField("id", "3c8f7a9e-4c2b-4e1a-9d6f-2b8a1c3d4e5f"); err != nil {
		t.Errorf("valid uuid rejected: %v", err)
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("boom")
	wrapped := WrapError(base, "open database")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error lost its cause")
	}
	if WrapError(nil, "anything") != nil {
		t.Error("nil error must stay nil")
	}
}
