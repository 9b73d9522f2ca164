package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewService("secret")
	result, err := s.SignIn("Ada")
	if err != nil {
		t.Fatal(err)
	}

	user, err := s.ValidateToken(result.Token)
	if err != nil {
		t.Fatal(err)
	}
	if user != result.User || user.DisplayName != "Ada" {
		t.Errorf("user = %+v, want %+v", user, result.User)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	s := NewService("secret")
	good, _ := s.SignIn("Ada")

	other := NewService("other-secret")
	expired := NewService("secret")
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	old, _ := expired.SignIn("Ada")
	badSubject, _ := s.IssueToken(User{ID: "not-a-typeid"})

	tests := map[string]struct {
		svc   *Service
		token string
	}{
		"wrong secret": {other, good.Token},
		"expired":      {s, old.Token},
		"garbage":      {s, "abc.def.ghi"},
		"bad subject":  {s, badSubject},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := tt.svc.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := NewService("secret")
	good, _ := s.SignIn("Ada")

	var seen string
	h := s.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"ok", "Bearer " + good.Token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/api/workspaces", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusOK && seen != good.User.ID {
				t.Errorf("user id = %q", seen)
			}
		})
	}
}

func TestSignInHandler(t *testing.T) {
	h := NewHandler(NewService("secret"))

	rec := httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"displayName":"  "}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank name status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.SignIn(rec, httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"displayName":"Ada"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	var result AuthResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Token == "" || result.User.DisplayName != "Ada" {
		t.Errorf("result = %+v", result)
	}
}
