package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signedToken(t, "secret", jwt.MapClaims{
		"sub":  "u-1",
		"role": "CLIENTE",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		if c.Get(KeyUserID) != "u-1" {
			t.Fatalf("user id not set")
		}
		if c.Get(KeyRole) != "CLIENTE" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired := signedToken(t, "secret", jwt.MapClaims{"sub": "u-1", "exp": time.Now().Add(-time.Hour).Unix()})
	wrongKey := signedToken(t, "other", jwt.MapClaims{"sub": "u-1"})
	noSubject := signedToken(t, "secret", jwt.MapClaims{"role": "CLIENTE"})

	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Token abc",
		"garbage token":   "Bearer not-a-token",
		"expired token":   "Bearer " + expired,
		"wrong secret":    "Bearer " + wrongKey,
		"missing subject": "Bearer " + noSubject,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called := runAuth(t, header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
