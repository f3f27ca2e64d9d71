package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthApp(c *Checker) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/healthz", Liveness)
	app.Get("/readyz", c.Readiness)
	return app
}

func TestLiveness(t *testing.T) {
	app := healthApp(NewChecker(zerolog.Nop()))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestChecker_AllHealthy(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("arkide_api", func(ctx context.Context) Status { return StatusOK })
	c.Register("guidelines", func(ctx context.Context) Status { return StatusOK })

	assert.True(t, c.IsReady(context.Background()))
}

func TestChecker_OneDown(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("arkide_api", func(ctx context.Context) Status { return StatusOK })
	c.Register("guidelines", func(ctx context.Context) Status { return StatusDown })

	assert.False(t, c.IsReady(context.Background()))
}

func TestChecker_Degraded_StillReady(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("arkide_api", func(ctx context.Context) Status { return StatusDegraded })

	assert.True(t, c.IsReady(context.Background()))
}

func TestChecker_NoChecks(t *testing.T) {
	assert.True(t, NewChecker(zerolog.Nop()).IsReady(context.Background()))
}

func TestReadiness_Healthy(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("arkide_api", func(ctx context.Context) Status { return StatusOK })

	resp, err := healthApp(c).Test(httptest.NewRequest(http.MethodGet, "/readyz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]Status `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, StatusOK, body.Checks["arkide_api"])
}

func TestReadiness_NotReady(t *testing.T) {
	c := NewChecker(zerolog.Nop())
	c.Register("guidelines", func(ctx context.Context) Status { return StatusDown })

	resp, err := healthApp(c).Test(httptest.NewRequest(http.MethodGet, "/readyz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
