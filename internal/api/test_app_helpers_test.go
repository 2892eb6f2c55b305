package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcy/internal/db"
	"github.com/terraincognita07/ovumcy/internal/services"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

const testPassword = "StrongPass1"

func newTestApp(t *testing.T) (*fiber.App, *Handler, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ovumcy-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	handler, err := NewHandler(database, HandlerOptions{
		SecretKey: testSecretKey,
		Location:  time.UTC,
		Analytics: services.DefaultAnalyticsConfig(),
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	return NewApp(handler, AppOptions{MetricsEnabled: true}), handler, database
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()

	if response.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, readBody(t, response))
	}
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()

	defer response.Body.Close()
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(raw)
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, response, &payload)
	return payload["error"]
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": testPassword,
	})
	expectStatus(t, response, fiber.StatusCreated)

	payload := authResponse{}
	decodeJSON(t, response, &payload)
	if payload.Token == "" {
		t.Fatal("expected register to return a token")
	}
	return payload.Token
}

func createTestCycle(t *testing.T, app *fiber.App, token string, start string, end string) cycleView {
	t.Helper()

	payload := fiber.Map{"start_date": start}
	if end != "" {
		payload["end_date"] = end
	}
	response := doJSON(t, app, http.MethodPost, "/api/cycles", token, payload)
	expectStatus(t, response, fiber.StatusCreated)

	cycle := cycleView{}
	decodeJSON(t, response, &cycle)
	return cycle
}

// seedWorkedExample stores three 28-day cycles with five-day periods.
func seedWorkedExample(t *testing.T, app *fiber.App, token string) []cycleView {
	t.Helper()

	return []cycleView{
		createTestCycle(t, app, token, "2024-01-01", "2024-01-05"),
		createTestCycle(t, app, token, "2024-01-29", "2024-02-02"),
		createTestCycle(t, app, token, "2024-02-26", "2024-03-01"),
	}
}
