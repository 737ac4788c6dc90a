package errors

import (
	stderrors "errors"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeDatabaseError, "db down", http.StatusInternalServerError)
	if !err.Retryable {
		t.Error("DATABASE_ERROR should be retryable")
	}
}

func TestAppError_NotFound_Success(t *testing.T) {
	err := NotFound("user")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Message != "User not found" {
		t.Errorf("unexpected message: %q", err.Message)
	}
	if err.Details["resource"] != "user" {
		t.Errorf("expected resource=user, got %v", err.Details["resource"])
	}
}

func TestAppError_AlreadyExists_Success(t *testing.T) {
	err := AlreadyExists("student")
	if err.Code != ErrCodeAlreadyExists {
		t.Errorf("expected ALREADY_EXISTS, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected 409, got %d", err.HTTPStatus)
	}
	if err.Message != "Student already exists" {
		t.Errorf("unexpected message: %q", err.Message)
	}
}

func TestAppError_InvalidCredentials_Success(t *testing.T) {
	err := InvalidCredentials()
	if err.Code != ErrCodeInvalidCredentials {
		t.Errorf("expected INVALID_CREDENTIALS, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", err.HTTPStatus)
	}
}

func TestAppError_TokenErrors_Forbidden(t *testing.T) {
	if got := TokenExpired().HTTPStatus; got != http.StatusForbidden {
		t.Errorf("TokenExpired: expected 403, got %d", got)
	}
	if got := InvalidToken().HTTPStatus; got != http.StatusForbidden {
		t.Errorf("InvalidToken: expected 403, got %d", got)
	}
}

func TestAppError_MissingFields_Success(t *testing.T) {
	err := MissingFields("email", "password")
	if err.Code != ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
	fields, ok := err.Details["fields"].([]string)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 fields in details, got %v", err.Details["fields"])
	}
}

func TestAppError_Internal_HidesCause(t *testing.T) {
	cause := fmt.Errorf("db connection lost")
	err := Internal(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}

	body, jsonErr := json.Marshal(err.ToResponse())
	if jsonErr != nil {
		t.Fatalf("marshal: %v", jsonErr)
	}
	if containsString(string(body), "connection lost") {
		t.Errorf("cause leaked into client response: %s", body)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := DatabaseError(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("wrapped: %w", NotFound("user"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed on a wrapped AppError")
	}
	if appErr.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", appErr.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected AsAppError to fail on a plain error")
	}
}

func containsString(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
