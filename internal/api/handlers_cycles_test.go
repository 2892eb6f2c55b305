package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCreateCyclesKeepsOneActiveAndComputesLengths(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerTestUser(t, app, "cycles@example.com")
	created := seedWorkedExample(t, app, token)

	if created[0].PeriodLength == nil || *created[0].PeriodLength != 5 {
		t.Fatalf("expected period length 5, got %v", created[0].PeriodLength)
	}

	response := doJSON(t, app, http.MethodGet, "/api/cycles", token, nil)
	expectStatus(t, response, fiber.StatusOK)
	cycles := []cycleView{}
	decodeJSON(t, response, &cycles)

	if len(cycles) != 3 {
		t.Fatalf("expected 3 cycles, got %d", len(cycles))
	}
	wantStarts := []string{"2024-02-26", "2024-01-29", "2024-01-01"}
	for index, want := range wantStarts {
		if cycles[index].StartDate != want {
			t.Fatalf("expected cycle %d to start %s, got %s", index, want, cycles[index].StartDate)
		}
	}

	active := 0
	for _, cycle := range cycles {
		if cycle.IsActive {
			active++
		}
	}
	if active != 1 || !cycles[0].IsActive {
		t.Fatalf("expected only the newest cycle active, got %#v", cycles)
	}

	if cycles[0].CycleLength != nil {
		t.Fatalf("expected newest cycle without cycle length, got %d", *cycles[0].CycleLength)
	}
	for _, cycle := range cycles[1:] {
		if cycle.CycleLength == nil || *cycle.CycleLength != 28 {
			t.Fatalf("expected cycle length 28 for %s, got %v", cycle.StartDate, cycle.CycleLength)
		}
	}

	response = doJSON(t, app, http.MethodGet, "/api/cycles/current", token, nil)
	expectStatus(t, response, fiber.StatusOK)
	current := cycleView{}
	decodeJSON(t, response, &current)
	if current.StartDate != "2024-02-26" {
		t.Fatalf("expected current cycle 2024-02-26, got %s", current.StartDate)
	}
}

func TestCreateCycleRejections(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerTestUser(t, app, "cycle-errors@example.com")
	createTestCycle(t, app, token, "2024-01-01", "")

	tests := []struct {
		name    string
		payload fiber.Map
		status  int
		message string
	}{
		{
			name:    "duplicate start",
			payload: fiber.Map{"start_date": "2024-01-01"},
			status:  fiber.StatusConflict,
			message: "cycle already exists for this start date",
		},
		{
			name:    "end before start",
			payload: fiber.Map{"start_date": "2024-02-10", "end_date": "2024-02-05"},
			status:  fiber.StatusBadRequest,
			message: "end date must not be before start date",
		},
		{
			name:    "missing start",
			payload: fiber.Map{"notes": "no date"},
			status:  fiber.StatusBadRequest,
			message: "start_date is required",
		},
		{
			name:    "malformed start",
			payload: fiber.Map{"start_date": "01/02/2024"},
			status:  fiber.StatusBadRequest,
			message: "invalid start_date",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			response := doJSON(t, app, http.MethodPost, "/api/cycles", token, testCase.payload)
			if response.StatusCode != testCase.status {
				t.Fatalf("expected status %d, got %d", testCase.status, response.StatusCode)
			}
			if message := readAPIError(t, response); message != testCase.message {
				t.Fatalf("expected %q, got %q", testCase.message, message)
			}
		})
	}
}

func TestCurrentCycleWithoutHistoryIsNotFound(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerTestUser(t, app, "empty@example.com")

	response := doJSON(t, app, http.MethodGet, "/api/cycles/current", token, nil)
	if response.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
	if message := readAPIError(t, response); message != "cycle not found" {
		t.Fatalf("expected cycle not found, got %q", message)
	}
}

func TestUpdateCycleSetsAndClearsEndDate(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerTestUser(t, app, "update@example.com")
	cycle := createTestCycle(t, app, token, "2024-03-01", "")
	path := fmt.Sprintf("/api/cycles/%d", cycle.ID)

	response := doJSON(t, app, http.MethodPatch, path, token, fiber.Map{"end_date": "2024-03-04", "notes": " light "})
	expectStatus(t, response, fiber.StatusOK)
	updated := cycleView{}
	decodeJSON(t, response, &updated)
	if updated.EndDate == nil || *updated.EndDate != "2024-03-04" {
		t.Fatalf("expected end date 2024-03-04, got %v", updated.EndDate)
	}
	if updated.PeriodLength == nil || *updated.PeriodLength != 4 {
		t.Fatalf("expected period length 4, got %v", updated.PeriodLength)
	}
	if updated.Notes != "light" {
		t.Fatalf("expected trimmed notes, got %q", updated.Notes)
	}

	response = doJSON(t, app, http.MethodPatch, path, token, fiber.Map{"end_date": "2024-02-20"})
	if response.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	response.Body.Close()

	response = doJSON(t, app, http.MethodPatch, path, token, fiber.Map{"clear_end_date": true})
	expectStatus(t, response, fiber.StatusOK)
	cleared := cycleView{}
	decodeJSON(t, response, &cleared)
	if cleared.EndDate != nil || cleared.PeriodLength != nil {
		t.Fatalf("expected end date and period length cleared, got %#v", cleared)
	}
}

func TestDeleteCycleRecomputesLengths(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerTestUser(t, app, "delete-cycle@example.com")
	created := seedWorkedExample(t, app, token)

	response := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/cycles/%d", created[2].ID), token, nil)
	expectStatus(t, response, fiber.StatusNoContent)
	response.Body.Close()

	response = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/cycles/%d", created[1].ID), token, nil)
	expectStatus(t, response, fiber.StatusOK)
	latest := cycleView{}
	decodeJSON(t, response, &latest)
	if latest.CycleLength != nil {
		t.Fatalf("expected no cycle length once the next cycle is gone, got %d", *latest.CycleLength)
	}

	response = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/cycles/%d", created[2].ID), token, nil)
	if response.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected status 404 for deleted cycle, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestCyclesAreScopedToOwner(t *testing.T) {
	app, _, _ := newTestApp(t)
	owner := registerTestUser(t, app, "owner@example.com")
	other := registerTestUser(t, app, "other@example.com")
	cycle := createTestCycle(t, app, owner, "2024-01-01", "")
	path := fmt.Sprintf("/api/cycles/%d", cycle.ID)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		var payload any
		if method == http.MethodPatch {
			payload = fiber.Map{"notes": "hijack"}
		}
		response := doJSON(t, app, method, path, other, payload)
		if response.StatusCode != fiber.StatusNotFound {
			t.Fatalf("expected status 404 for %s by other user, got %d", method, response.StatusCode)
		}
		response.Body.Close()
	}

	response := doJSON(t, app, http.MethodGet, "/api/cycles", other, nil)
	expectStatus(t, response, fiber.StatusOK)
	cycles := []cycleView{}
	decodeJSON(t, response, &cycles)
	if len(cycles) != 0 {
		t.Fatalf("expected other user to see no cycles, got %d", len(cycles))
	}
}

func TestCycleRoutesRejectInvalidID(t *testing.T) {
	app, _, _ := newTestApp(t)
	token := registerTestUser(t, app, "badid@example.com")

	response := doJSON(t, app, http.MethodGet, "/api/cycles/abc", token, nil)
	if response.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	if message := readAPIError(t, response); message != "invalid id" {
		t.Fatalf("expected invalid id, got %q", message)
	}
}
