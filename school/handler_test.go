package school

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/schoolauth/auth/jwt"
	"github.com/kbukum/schoolauth/auth/password"
	"github.com/kbukum/schoolauth/logger"
	"github.com/kbukum/schoolauth/server/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeStudentStore, *fakeParentStore) {
	t.Helper()
	students := &fakeStudentStore{}
	parents := &fakeParentStore{}

	tokens, err := jwt.NewService(&jwt.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}
	hasher := password.NewBcryptHasher(password.WithCost(4))
	log := logger.NewDefault("test")

	svc := NewService(students, parents, hasher, tokens, log)
	handler := NewHandler(svc, log)

	r := gin.New()
	handler.Register(r, middleware.BearerAuth(tokens))
	return r, students, parents
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v (%s)", err, rr.Body.String())
	}
	return body
}

func registerStudent(t *testing.T, r *gin.Engine) map[string]any {
	t.Helper()
	rr := doJSON(t, r, "PUT", "/student", map[string]string{
		"name":          "Sarah",
		"email":         "sarah@example.com",
		"password":      "pw1",
		"educationCode": "EDU1",
		"number":        "1001",
	}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	return decodeBody(t, rr)
}

func TestHandler_RegisterStudent(t *testing.T) {
	r, students, _ := newTestRouter(t)

	body := registerStudent(t, r)
	if body["message"] != "Student registered successfully" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	result, ok := body["result"].(map[string]any)
	if !ok || result["insertedId"] == "" {
		t.Errorf("expected result.insertedId, got %v", body["result"])
	}
	if len(students.records) != 1 {
		t.Fatalf("expected one stored record, got %d", len(students.records))
	}
}

func TestHandler_RegisterStudent_MissingFields(t *testing.T) {
	r, students, _ := newTestRouter(t)

	rr := doJSON(t, r, "PUT", "/student", map[string]string{
		"email": "sarah@example.com",
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(students.records) != 0 {
		t.Error("no record should be written on validation failure")
	}
}

func TestHandler_RegisterStudent_Duplicate(t *testing.T) {
	r, students, _ := newTestRouter(t)

	registerStudent(t, r)
	rr := doJSON(t, r, "PUT", "/student", map[string]string{
		"email":         "sarah@example.com",
		"password":      "other",
		"educationCode": "EDU1",
		"number":        "1001",
	}, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(students.records) != 1 {
		t.Errorf("expected a single record, got %d", len(students.records))
	}
}

func TestHandler_RegisterParent(t *testing.T) {
	r, _, parents := newTestRouter(t)

	rr := doJSON(t, r, "PUT", "/parent", map[string]string{
		"name":           "Tom",
		"email":          "dad@example.com",
		"password":       "pw1",
		"number":         "2001",
		"relationship":   "father",
		"childStudentId": "abc123",
	}, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["message"] != "Parent registered successfully" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if len(parents.records) != 1 {
		t.Fatalf("expected one stored record, got %d", len(parents.records))
	}
}

func TestHandler_Login(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerStudent(t, r)

	rr := doJSON(t, r, "POST", "/login", map[string]string{
		"email":    "sarah@example.com",
		"password": "pw1",
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["message"] != "Login successful" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if body["token"] == "" || body["token"] == nil {
		t.Error("expected a token in the response")
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user object, got %v", body["user"])
	}
	if user["role"] != RoleStudent {
		t.Errorf("expected role %s, got %v", RoleStudent, user["role"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password must never appear in the login response")
	}
}

func TestHandler_Login_WrongPassword(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerStudent(t, r)

	rr := doJSON(t, r, "POST", "/login", map[string]string{
		"email":    "sarah@example.com",
		"password": "wrong",
	}, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandler_Login_UnknownEmail(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rr := doJSON(t, r, "POST", "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "pw1",
	}, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandler_Login_MissingBody(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rr := doJSON(t, r, "POST", "/login", map[string]string{}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandler_Me(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerStudent(t, r)

	login := doJSON(t, r, "POST", "/login", map[string]string{
		"email":    "sarah@example.com",
		"password": "pw1",
	}, nil)
	token := decodeBody(t, login)["token"].(string)

	rr := doJSON(t, r, "GET", "/me", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	user := decodeBody(t, rr)["user"].(map[string]any)
	if user["email"] != "sarah@example.com" || user["role"] != RoleStudent {
		t.Errorf("unexpected user: %v", user)
	}
}

func TestHandler_Me_Unauthenticated(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rr := doJSON(t, r, "GET", "/me", nil, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandler_RootAndProbe(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rr := doJSON(t, r, "GET", "/", nil, nil)
	if rr.Code != http.StatusOK || rr.Body.String() != "Server is running" {
		t.Errorf("unexpected root response: %d %q", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, r, "GET", "/ch", nil, nil)
	if rr.Code != http.StatusOK || rr.Body.String() != "okay" {
		t.Errorf("unexpected probe response: %d %q", rr.Code, rr.Body.String())
	}
}
