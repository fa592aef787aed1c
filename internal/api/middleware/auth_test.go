package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, userID, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

type fakeChecker struct {
	revoked map[string]bool
	err     error
}

func (f *fakeChecker) IsRevoked(_ context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[token], nil
}

func invokeAuth(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestAuthSetsIdentity(t *testing.T) {
	token := signToken(t, testSecret, "user-1", "normalUser", time.Hour)
	c, err := invokeAuth(t, Auth(testSecret, nil), "Bearer "+token)
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if got := c.Get("user_id"); got != "user-1" {
		t.Errorf("user_id = %v", got)
	}
	if got := c.Get("role"); got != "normalUser" {
		t.Errorf("role = %v", got)
	}
	if got := c.Get("token"); got != token {
		t.Errorf("token not stored in context")
	}
}

func TestAuthRejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic abc123"},
		{"malformed token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + signToken(t, "other-secret", "user-1", "normalUser", time.Hour)},
		{"expired token", "Bearer " + signToken(t, testSecret, "user-1", "normalUser", -time.Minute)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := invokeAuth(t, Auth(testSecret, nil), tc.header)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected *echo.HTTPError, got %v", err)
			}
			if httpErr.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", httpErr.Code)
			}
		})
	}
}

func TestAuthRejectsRevokedToken(t *testing.T) {
	token := signToken(t, testSecret, "user-1", "normalUser", time.Hour)
	checker := &fakeChecker{revoked: map[string]bool{token: true}}

	_, err := invokeAuth(t, Auth(testSecret, checker), "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %v", err)
	}
}

func TestAuthAcceptsUnrevokedToken(t *testing.T) {
	token := signToken(t, testSecret, "user-1", "normalUser", time.Hour)
	checker := &fakeChecker{revoked: map[string]bool{}}

	_, err := invokeAuth(t, Auth(testSecret, checker), "Bearer "+token)
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
}
