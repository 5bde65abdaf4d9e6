package router_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking-portal/config"
	adminhandler "booking-portal/internal/module/admin/handler"
	bookinghandler "booking-portal/internal/module/booking/handler"
	linehandler "booking-portal/internal/module/line/handler"
	studenthandler "booking-portal/internal/module/student/handler"
	log_internal "booking-portal/internal/pkg/log"
	"booking-portal/internal/pkg/middleware"
	"booking-portal/internal/pkg/session"
	router "booking-portal/internal/route"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() (*fiber.App, *session.Manager) {
	log := log_internal.Setup()
	sessions := session.New(&config.AdminConfig{SessionSecret: "s3cret", SessionTTL: time.Hour})
	m := &middleware.Middleware{Log: log, Session: sessions}

	monitoring := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("asynqmon"))
	})

	app := router.Initialize(fiber.New(),
		&bookinghandler.BookingHandler{Log: log},
		&linehandler.LineHandler{Log: log},
		&studenthandler.StudentHandler{Log: log},
		&adminhandler.AdminHandler{Log: log},
		m,
		monitoring,
	)
	return app, sessions
}

func TestHealth(t *testing.T) {
	app, _ := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "OK", string(body))
}

func TestAdminRoutesRequireSession(t *testing.T) {
	app, _ := newApp()

	for _, tc := range []struct{ method, path string }{
		{"GET", "/api/v1/line/users"},
		{"POST", "/api/v1/line/users"},
		{"GET", "/api/v1/students"},
		{"GET", "/api/v1/students/rec1"},
		{"POST", "/api/v1/students/rec1/email"},
		{"GET", "/monitoring"},
		{"GET", "/monitoring/api/queues"},
	} {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestMonitoringWithSession(t *testing.T) {
	app, sessions := newApp()
	token, _, err := sessions.Issue("admin")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/monitoring", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "asynqmon", string(body))
}
