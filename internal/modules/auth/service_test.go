package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/georgemunganga/ims-backend/internal/apperr"
	"github.com/georgemunganga/ims-backend/internal/config"
	"github.com/georgemunganga/ims-backend/internal/modules/user"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	users map[string]*user.User
}

func (m *memUsers) CreateUser(context.Context, *user.User) error { return nil }

func (m *memUsers) GetByUsername(_ context.Context, username string) (*user.User, error) {
	return m.users[username], nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func newTestService(t *testing.T) *service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &memUsers{users: map[string]*user.User{
		"ana": {ID: 4, Username: "ana", PasswordHash: string(hash), Role: user.RoleAdmin},
		"ben": {ID: 5, Username: "ben", PasswordHash: string(hash), Role: user.RoleStaff},
	}}
	return NewService(repo, config.JWTConfig{Secret: "test-secret", TTL: time.Hour}).(*service)
}

func login(t *testing.T, s Service, username string) string {
	t.Helper()
	tok, err := s.Login(context.Background(), username, "correct-horse")
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	return tok.AccessToken
}

func TestLogin(t *testing.T) {
	s := newTestService(t)

	testCases := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "ana", "correct-horse", false},
		{"wrong password", "ana", "battery-staple", true},
		{"unknown user", "zoe", "correct-horse", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tok, err := s.Login(context.Background(), tc.username, tc.password)
			if tc.wantErr {
				if !apperr.Is(err, apperr.KindUnauthorized) {
					t.Fatalf("Expected unauthorized, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected success, got %v", err)
			}
			claims, err := s.ParseToken(tok.AccessToken)
			if err != nil {
				t.Fatalf("issued token does not parse: %v", err)
			}
			if claims.UserID != 4 || claims.Role != user.RoleAdmin || claims.Subject != "4" || claims.Id == "" {
				t.Errorf("unexpected claims %+v", claims)
			}
		})
	}
}

func TestParseToken_Rejects(t *testing.T) {
	s := newTestService(t)
	valid := login(t, s, "ana")

	other := newTestService(t)
	other.jwtKey = []byte("another-secret")
	foreign := login(t, other, "ana")

	expiredSvc := newTestService(t)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired := login(t, expiredSvc, "ana")

	for name, tok := range map[string]string{
		"tampered":  valid + "x",
		"foreign":   foreign,
		"expired":   expired,
		"not a jwt": "abc",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := s.ParseToken(tok); !apperr.Is(err, apperr.KindUnauthorized) {
				t.Errorf("Expected unauthorized, got %v", err)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	s := newTestService(t)
	admin := login(t, s, "ana")
	staff := login(t, s, "ben")

	var seen int64
	protected := RequireRole(s, user.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	testCases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + admin, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + staff, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusNoContent},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seen = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, rec.Code)
			}
			if tc.want == http.StatusNoContent && seen != 4 {
				t.Errorf("Expected claims for user 4 in context, got %d", seen)
			}
		})
	}
}
