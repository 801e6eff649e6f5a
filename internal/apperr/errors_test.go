package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minjae-ko/localtax-portal/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid expression", inner)

	if err.Error() != "invalid expression: parse failed" {
		t.Errorf("expected 'invalid expression: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestNotFound_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewNotFound("content not found")

	wrapped := fmt.Errorf("resolve failed: %w", original)

	var nf *apperr.NotFoundError
	if !errors.As(wrapped, &nf) {
		t.Fatal("errors.As should find NotFoundError through wrapping")
	}
	if nf.Message != "content not found" {
		t.Errorf("expected 'content not found', got %q", nf.Message)
	}
}

func TestForbidden_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var fb *apperr.ForbiddenError
	if errors.As(wrapped, &fb) {
		t.Fatal("errors.As should NOT find ForbiddenError in plain error chain")
	}
}
