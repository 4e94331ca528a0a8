package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/awessel/todo-api/internal/auth"
	"github.com/awessel/todo-api/internal/models"
)

var testSecret = []byte("test-secret")

func protectedHandler(t *testing.T, wantEmail string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Error("identity missing from context")
		}
		if ident.Email != wantEmail {
			t.Errorf("identity email: got %q, want %q", ident.Email, wantEmail)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWT_ValidToken(t *testing.T) {
	svc := auth.NewTokenService(testSecret)
	token, err := svc.Issue(&models.User{ID: uuid.New(), Email: "alice@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	h := JWT(svc)(protectedHandler(t, "alice@x.com"))

	req := httptest.NewRequest("GET", "/todo", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestJWT_MissingHeader(t *testing.T) {
	svc := auth.NewTokenService(testSecret)
	h := JWT(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without token")
	}))

	req := httptest.NewRequest("GET", "/todo", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestJWT_MalformedHeader(t *testing.T) {
	svc := auth.NewTokenService(testSecret)
	h := JWT(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with malformed header")
	}))

	for _, header := range []string{"token-without-scheme", "Basic abc123"} {
		req := httptest.NewRequest("GET", "/todo", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status got %d, want 401", header, rr.Code)
		}
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	// Sign an already-expired token with the shared secret.
	claims := jwt.MapClaims{
		"id":    uuid.NewString(),
		"email": "old@x.com",
		"sub":   "old@x.com",
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc := auth.NewTokenService(testSecret)
	h := JWT(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with expired token")
	}))

	req := httptest.NewRequest("GET", "/todo", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["error"] != "token expired" {
		t.Errorf("error body: got %q, want %q", out["error"], "token expired")
	}
}
