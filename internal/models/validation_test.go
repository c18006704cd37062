package models

import (
	"errors"
	"testing"
)

func TestValidationErrorsIs(t *testing.T) {
	validation := &ValidationErrors{}
	validation.Add("id", ErrInvalidID)

	err := validation.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected errors.Is to match ErrInvalidID, got %v", err)
	}
}

func TestValidationErrorsNestedFields(t *testing.T) {
	nested := &ValidationErrors{}
	nested.Addf("base_url", "must be absolute, got %q", "localhost")

	validation := &ValidationErrors{}
	validation.Add("api", nested)

	err := validation.Err()
	if err == nil {
		t.Fatal("expected error")
	}

	list, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors type, got %T", err)
	}
	if len(list.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(list.Errors))
	}
	if list.Errors[0].Field != "api.base_url" {
		t.Fatalf("expected field api.base_url, got %q", list.Errors[0].Field)
	}
}

func TestValidationErrorsJoinsMessages(t *testing.T) {
	validation := &ValidationErrors{}
	validation.Addf("poll.interval", "must be at least %s", "100ms")
	validation.Addf("tui.theme", "unknown theme %q", "matrix")

	want := `poll.interval: must be at least 100ms; tui.theme: unknown theme "matrix"`
	if got := validation.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestEmptyValidationIsNil(t *testing.T) {
	var validation *ValidationErrors
	if validation.Err() != nil {
		t.Fatal("expected nil error for nil receiver")
	}
	if (&ValidationErrors{}).Err() != nil {
		t.Fatal("expected nil error when nothing was added")
	}
}
