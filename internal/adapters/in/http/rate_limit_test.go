package http_test

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	httpin "swiftserve/internal/adapters/in/http"
	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedEcho(t *testing.T, rl *httpin.RateLimiter) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "pong")
	}, rl.Middleware())
	return e
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := httpin.NewRateLimiter(1, 3)
	defer rl.Close()
	e := limitedEcho(t, rl)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(nethttp.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, nethttp.StatusOK, rec.Code)
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	rl := httpin.NewRateLimiter(1, 1)
	defer rl.Close()
	e := limitedEcho(t, rl)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	e.ServeHTTP(first, req)
	assert.Equal(t, nethttp.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(nethttp.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	e.ServeHTTP(second, req)
	assert.Equal(t, nethttp.StatusTooManyRequests, second.Code)
}

func TestRateLimiter_KeysOnAuthenticatedAccount(t *testing.T) {
	gate := httpin.NewSessionGate([]byte("test-secret"))
	rl := httpin.NewRateLimiter(1, 1)
	defer rl.Close()

	// The limiter sits behind the gate, same as in route registration.
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "pong")
	}, gate.Middleware(), rl.Middleware())

	alice, err := account.NewActor(kernel.NewUUID(), account.RoleCustomer)
	require.NoError(t, err)
	bob, err := account.NewActor(kernel.NewUUID(), account.RoleCustomer)
	require.NoError(t, err)

	aliceToken, err := gate.IssueToken(alice)
	require.NoError(t, err)
	bobToken, err := gate.IssueToken(bob)
	require.NoError(t, err)

	do := func(token, remote string) int {
		req := httptest.NewRequest(nethttp.MethodGet, "/ping", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	// Accounts sharing an address get separate buckets.
	assert.Equal(t, nethttp.StatusOK, do(aliceToken, "10.0.0.5:1234"))
	assert.Equal(t, nethttp.StatusOK, do(bobToken, "10.0.0.5:1234"))

	// Switching addresses does not refill an exhausted account bucket.
	assert.Equal(t, nethttp.StatusTooManyRequests, do(aliceToken, "10.0.0.6:1234"))
}

func TestRateLimiter_IsolatesCallers(t *testing.T) {
	rl := httpin.NewRateLimiter(1, 1)
	defer rl.Close()
	e := limitedEcho(t, rl)

	req := httptest.NewRequest(nethttp.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.3:1234"
	e.ServeHTTP(httptest.NewRecorder(), req)

	// A different address gets its own bucket.
	other := httptest.NewRecorder()
	req = httptest.NewRequest(nethttp.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.4:1234"
	e.ServeHTTP(other, req)
	assert.Equal(t, nethttp.StatusOK, other.Code)
}
