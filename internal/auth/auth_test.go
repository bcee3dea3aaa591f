package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndValidate(t *testing.T) {
	s := NewService("secret")
	token, err := s.IssueToken("designer", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	subject, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if subject != "designer" {
		t.Errorf("expected subject designer, got %q", subject)
	}
}

func TestValidateRejects(t *testing.T) {
	s := NewService("secret")
	good, _ := s.IssueToken("designer", time.Hour)

	expired := NewService("secret")
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	old, _ := expired.IssueToken("designer", time.Hour)

	other, _ := NewService("other-secret").IssueToken("designer", time.Hour)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "designer"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", old},
		{"wrong secret", other},
		{"unsigned", unsigned},
		{"truncated", good[:len(good)-4]},
	}
	for _, tt := range tests {
		if _, err := s.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", tt.name, err)
		}
	}
}

func TestIssueTokenRequiresSubject(t *testing.T) {
	if _, err := NewService("secret").IssueToken("", time.Hour); err == nil {
		t.Error("expected error for empty subject")
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := NewService("secret")
	token, _ := s.IssueToken("designer", 0)

	var seen string
	h := s.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"ok", "Bearer " + token, http.StatusNoContent},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != tt.status {
			t.Errorf("%s: expected status %d, got %d", tt.name, tt.status, rec.Code)
		}
	}
	if seen != "designer" {
		t.Errorf("expected subject in context, got %q", seen)
	}
}
