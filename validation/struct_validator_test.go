package validation

import (
	"testing"

	apperrors "github.com/kbukum/schoolauth/errors"
)

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestValidate_Passes(t *testing.T) {
	err := Validate(&loginForm{Email: "sarah@example.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(&loginForm{})
	if err == nil {
		t.Fatal("expected error for empty form")
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrCodeMissingField {
		t.Errorf("expected code %s, got %s", apperrors.ErrCodeMissingField, appErr.Code)
	}
	if appErr.HTTPStatus != 400 {
		t.Errorf("expected status 400, got %d", appErr.HTTPStatus)
	}
	if _, ok := appErr.Details["email"]; !ok {
		t.Error("expected email in details")
	}
	if _, ok := appErr.Details["password"]; !ok {
		t.Error("expected password in details")
	}
}

func TestValidate_BadEmail(t *testing.T) {
	err := Validate(&loginForm{Email: "not-an-email", Password: "pw1"})
	if err == nil {
		t.Fatal("expected error for malformed email")
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrCodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.ErrCodeInvalidInput, appErr.Code)
	}
	if appErr.Details["email"] != "must be a valid email address" {
		t.Errorf("unexpected detail: %v", appErr.Details["email"])
	}
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	type form struct {
		ChildStudentID string `json:"childStudentId" validate:"required"`
	}
	err := Validate(&form{})
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if _, ok := appErr.Details["childStudentId"]; !ok {
		t.Errorf("expected wire field name childStudentId in details, got %v", appErr.Details)
	}
}
