package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func testConfig() Config {
	return Config{
		Secret:   []byte("0123456789abcdef0123456789abcdef"),
		Issuer:   "clinic-server",
		TokenTTL: time.Hour,
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	cfg := testConfig()

	token, err := Issue(cfg, "reception", []string{"receptionist"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := Verify(cfg, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "reception" {
		t.Errorf("expected subject 'reception', got %q", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "receptionist" {
		t.Errorf("unexpected roles: %v", claims.Roles)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	cfg := testConfig()
	token, err := Issue(cfg, "admin", []string{"admin"})
	if err != nil {
		t.Fatal(err)
	}

	other := cfg
	other.Secret = []byte("ffffffffffffffffffffffffffffffff")
	if _, err := Verify(other, token); err == nil {
		t.Error("expected verification failure with the wrong secret")
	}
}

func TestMiddleware(t *testing.T) {
	cfg := testConfig()
	e := echo.New()
	handler := Middleware(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, UserIDFromContext(c.Request().Context()))
	})

	// No token
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %v", err)
	}

	// Valid token
	token, _ := Issue(cfg, "dr-lopez", []string{"doctor"})
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Body.String() != "dr-lopez" {
		t.Errorf("expected user id in context, got %q", rec.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	cfg := testConfig()
	e := echo.New()

	run := func(roles []string, required ...string) error {
		token, _ := Issue(cfg, "user", roles)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		chain := Middleware(cfg)(RequireRole(required...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}))
		return chain(e.NewContext(req, rec))
	}

	if err := run([]string{"doctor"}, "doctor"); err != nil {
		t.Errorf("doctor should pass doctor check: %v", err)
	}
	if err := run([]string{"admin"}, "doctor"); err != nil {
		t.Errorf("admin should pass every check: %v", err)
	}
	if err := run([]string{"receptionist"}, "doctor"); err == nil {
		t.Error("receptionist must not pass a doctor check")
	}
}

func TestCredentialsMatch(t *testing.T) {
	if !CredentialsMatch("admin", "s3cret", "admin", "s3cret") {
		t.Error("matching credentials rejected")
	}
	if CredentialsMatch("admin", "wrong", "admin", "s3cret") {
		t.Error("wrong password accepted")
	}
	if CredentialsMatch("root", "s3cret", "admin", "s3cret") {
		t.Error("wrong username accepted")
	}
}
