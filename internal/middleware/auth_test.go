package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lucianosaints/app-marica-cidadao/internal/config"
	"github.com/lucianosaints/app-marica-cidadao/internal/utils"
)

const testSecret = "test-secret"

func authChain(t *testing.T, extra ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), CtxUserID)
		w.Header().Set("X-Uid", uid)
		w.WriteHeader(http.StatusOK)
	})

	var h http.Handler = final
	for i := len(extra) - 1; i >= 0; i-- {
		h = extra[i](h)
	}
	cfg := config.Config{SessionSecret: testSecret}
	return WithAuth(zerolog.Nop(), cfg)(h)
}

func bearer(t *testing.T, uid string, staff bool) string {
	t.Helper()
	tok, err := utils.SignJWT(testSecret, uid, staff, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok
}

func TestWithAuthSetsIdentity(t *testing.T) {
	h := authChain(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, "user-1", false))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Uid"); got != "user-1" {
		t.Errorf("uid in context = %q, want user-1", got)
	}
}

func TestWithAuthIgnoresBadToken(t *testing.T) {
	h := authChain(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	// Passes through unauthenticated; no identity in context.
	if got := rr.Header().Get("X-Uid"); got != "" {
		t.Errorf("uid in context = %q, want empty", got)
	}
}

func TestRequireAuth(t *testing.T) {
	h := authChain(t, RequireAuth)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, "user-1", false))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("authenticated: status = %d, want 200", rr.Code)
	}
}

func TestRequireStaff(t *testing.T) {
	h := authChain(t, RequireAuth, RequireStaff)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, "user-1", false))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("citizen: status = %d, want 403", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, "staff-1", true))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("staff: status = %d, want 200", rr.Code)
	}
}
