package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"job-connect/internal/config"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const testSecret = "routes-test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())

	cfg := config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpiresIn = time.Hour
	cfg.App.FrontendURL = "http://localhost:3000"

	NewRegistry(Deps{Config: cfg}).Register(app)
	return app
}

func bearerToken(t *testing.T, role string) string {
	t.Helper()

	token, err := jwt.NewHMACService(testSecret, time.Hour).GenerateToken(uuid.New(), role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func doRequest(t *testing.T, app *fiber.App, method, target, auth string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func TestPublicJobRoutesNeedNoToken(t *testing.T) {
	app := newTestApp(t)

	// A malformed id reaches the handler and maps to 404; a credential
	// rejection would surface as 401/403 before the handler runs.
	resp := doRequest(t, app, fiber.MethodGet, "/api/jobs/not-a-uuid", "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("GET /api/jobs/:id without token: expected 404, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, fiber.MethodGet, "/api/jobs", "")
	if resp.StatusCode == fiber.StatusUnauthorized || resp.StatusCode == fiber.StatusForbidden {
		t.Fatalf("GET /api/jobs without token must not demand credentials, got %d", resp.StatusCode)
	}
}

func TestRecruiterJobRoutesAreGuarded(t *testing.T) {
	app := newTestApp(t)
	jobID := uuid.NewString()

	for _, c := range []struct {
		method, target string
	}{
		{fiber.MethodGet, "/api/jobs/my-jobs"},
		{fiber.MethodPost, "/api/jobs"},
		{fiber.MethodPut, "/api/jobs/" + jobID},
		{fiber.MethodDelete, "/api/jobs/" + jobID},
	} {
		resp := doRequest(t, app, c.method, c.target, "")
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s %s without token: expected 401, got %d", c.method, c.target, resp.StatusCode)
		}

		resp = doRequest(t, app, c.method, c.target, bearerToken(t, "jobseeker"))
		if resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("%s %s with jobseeker token: expected 403, got %d", c.method, c.target, resp.StatusCode)
		}
	}
}

func TestAuthRoutesAreOpen(t *testing.T) {
	app := newTestApp(t)

	// Empty bodies fail binding inside the handler, proving no guard sits in
	// front of register/login.
	for _, target := range []string{"/api/users/register", "/api/users/login"} {
		resp := doRequest(t, app, fiber.MethodPost, target, "")
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("POST %s: expected 400 from body binding, got %d", target, resp.StatusCode)
		}
	}
}

func TestProfileRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, c := range []struct {
		method, target string
	}{
		{fiber.MethodGet, "/api/users/profile"},
		{fiber.MethodPut, "/api/users/profile"},
		{fiber.MethodPost, "/api/users/profile/resume"},
	} {
		resp := doRequest(t, app, c.method, c.target, "")
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s %s without token: expected 401, got %d", c.method, c.target, resp.StatusCode)
		}
	}
}

func TestApplicationRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	appID := uuid.NewString()

	for _, c := range []struct {
		method, target string
	}{
		{fiber.MethodGet, "/api/applications/my"},
		{fiber.MethodGet, "/api/applications/recruiter"},
		{fiber.MethodPost, "/api/applications/job/" + uuid.NewString()},
		{fiber.MethodGet, "/api/applications/" + appID},
		{fiber.MethodPut, "/api/applications/" + appID + "/status"},
		{fiber.MethodPut, "/api/applications/" + appID + "/interview"},
		{fiber.MethodGet, "/api/applications/" + appID + "/resume"},
	} {
		resp := doRequest(t, app, c.method, c.target, "")
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s %s without token: expected 401, got %d", c.method, c.target, resp.StatusCode)
		}
	}
}

func TestApplicationRoleGuards(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, fiber.MethodGet, "/api/applications/my", bearerToken(t, "recruiter"))
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("GET /api/applications/my with recruiter token: expected 403, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, fiber.MethodGet, "/api/applications/recruiter", bearerToken(t, "jobseeker"))
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("GET /api/applications/recruiter with jobseeker token: expected 403, got %d", resp.StatusCode)
	}
}
