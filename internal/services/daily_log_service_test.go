package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/ovumcy/internal/models"
)

type dailyLogRepositoryStub struct {
	entries   map[string]models.DailyLog
	nextID    uint
	findErr   error
	createErr error
	saveErr   error
}

func newDailyLogRepositoryStub() *dailyLogRepositoryStub {
	return &dailyLogRepositoryStub{entries: make(map[string]models.DailyLog), nextID: 1}
}

func (stub *dailyLogRepositoryStub) key(userID uint, day time.Time) string {
	return fmt.Sprintf("%d#%s", userID, day.Format("2006-01-02"))
}

func (stub *dailyLogRepositoryStub) ListByUser(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if fromStart != nil && entry.Date.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !entry.Date.Before(*toEnd) {
			continue
		}
		logs = append(logs, entry)
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
	return logs, nil
}

func (stub *dailyLogRepositoryStub) FindByUserAndDayRange(userID uint, dayStart time.Time, _ time.Time) (models.DailyLog, bool, error) {
	if stub.findErr != nil {
		return models.DailyLog{}, false, stub.findErr
	}
	entry, ok := stub.entries[stub.key(userID, dayStart)]
	return entry, ok, nil
}

func (stub *dailyLogRepositoryStub) Create(entry *models.DailyLog) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	entry.ID = stub.nextID
	stub.nextID++
	stub.entries[stub.key(entry.UserID, entry.Date)] = *entry
	return nil
}

func (stub *dailyLogRepositoryStub) Save(entry *models.DailyLog) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.entries[stub.key(entry.UserID, entry.Date)] = *entry
	return nil
}

func (stub *dailyLogRepositoryStub) DeleteByUserAndDayRange(userID uint, dayStart time.Time, _ time.Time) (bool, error) {
	key := stub.key(userID, dayStart)
	if _, ok := stub.entries[key]; !ok {
		return false, nil
	}
	delete(stub.entries, key)
	return true, nil
}

func stringPtr(value string) *string {
	return &value
}

func floatPtr(value float64) *float64 {
	return &value
}

func TestUpsertLogCreatesThenUpdates(t *testing.T) {
	repository := newDailyLogRepositoryStub()
	service := NewDailyLogService(repository)
	day := time.Date(2024, time.March, 4, 21, 15, 0, 0, time.UTC)

	created, isNew, err := service.UpsertLog(1, day, DailyLogInput{Mood: stringPtr(" Bad "), Temperature: floatPtr(36.6)})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if !isNew {
		t.Fatal("expected first upsert to create")
	}
	if created.Mood == nil || *created.Mood != models.MoodBad {
		t.Fatalf("expected normalized mood bad, got %v", created.Mood)
	}
	if got := created.Date.Format("2006-01-02 15:04"); got != "2024-03-04 00:00" {
		t.Fatalf("expected calendar day, got %s", got)
	}

	updated, isNew, err := service.UpsertLog(1, mustParseDay("2024-03-04"), DailyLogInput{Mood: stringPtr(""), SexualActivity: true, Notes: " tired "})
	if err != nil {
		t.Fatalf("update log: %v", err)
	}
	if isNew {
		t.Fatal("expected second upsert to update")
	}
	if updated.ID != created.ID {
		t.Fatalf("expected same row, got ids %d and %d", created.ID, updated.ID)
	}
	if updated.Mood != nil || updated.Temperature != nil || !updated.SexualActivity || updated.Notes != "tired" {
		t.Fatalf("expected replaced fields, got %+v", updated)
	}
}

func TestUpsertLogValidation(t *testing.T) {
	service := NewDailyLogService(newDailyLogRepositoryStub())
	day := mustParseDay("2024-03-04")

	cases := []struct {
		name  string
		input DailyLogInput
		want  error
	}{
		{name: "unknown mood", input: DailyLogInput{Mood: stringPtr("ecstatic")}, want: ErrInvalidMood},
		{name: "temperature too low", input: DailyLogInput{Temperature: floatPtr(12)}, want: ErrInvalidTemperature},
		{name: "weight not positive", input: DailyLogInput{Weight: floatPtr(0)}, want: ErrInvalidWeight},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, _, err := service.UpsertLog(1, day, testCase.input); !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}

func TestTrimDailyLogNotesCountsRunes(t *testing.T) {
	long := strings.Repeat("é", MaxDailyLogNotesLength+10)
	trimmed := TrimDailyLogNotes(long)
	if got := len([]rune(trimmed)); got != MaxDailyLogNotesLength {
		t.Fatalf("expected %d runes, got %d", MaxDailyLogNotesLength, got)
	}
}

func TestListLogsRange(t *testing.T) {
	repository := newDailyLogRepositoryStub()
	service := NewDailyLogService(repository)
	for _, raw := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-05"} {
		if _, _, err := service.UpsertLog(1, mustParseDay(raw), DailyLogInput{}); err != nil {
			t.Fatalf("seed %s: %v", raw, err)
		}
	}

	from := mustParseDay("2024-03-02")
	to := mustParseDay("2024-03-03")
	logs, err := service.ListLogs(1, &from, &to)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 2 || logs[0].Date.Format("2006-01-02") != "2024-03-03" {
		t.Fatalf("expected the two inclusive days newest first, got %d logs", len(logs))
	}

	all, err := service.ListLogs(1, nil, nil)
	if err != nil {
		t.Fatalf("list all logs: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 logs, got %d", len(all))
	}

	if _, err := service.ListLogs(1, &to, &from); !errors.Is(err, ErrDailyLogRangeInvalid) {
		t.Fatalf("expected ErrDailyLogRangeInvalid, got %v", err)
	}
}

func TestGetAndDeleteLogByDate(t *testing.T) {
	service := NewDailyLogService(newDailyLogRepositoryStub())
	day := mustParseDay("2024-03-04")

	if _, err := service.GetLogByDate(1, day); !errors.Is(err, ErrDailyLogNotFound) {
		t.Fatalf("expected ErrDailyLogNotFound, got %v", err)
	}
	if _, _, err := service.UpsertLog(1, day, DailyLogInput{Mood: stringPtr(models.MoodGreat)}); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	entry, err := service.GetLogByDate(1, day)
	if err != nil {
		t.Fatalf("get log: %v", err)
	}
	if entry.Mood == nil || *entry.Mood != models.MoodGreat {
		t.Fatalf("expected mood great, got %v", entry.Mood)
	}

	if err := service.DeleteLogByDate(1, day); err != nil {
		t.Fatalf("delete log: %v", err)
	}
	if err := service.DeleteLogByDate(1, day); !errors.Is(err, ErrDailyLogNotFound) {
		t.Fatalf("expected ErrDailyLogNotFound on second delete, got %v", err)
	}
}

func TestUpsertLogStorageErrors(t *testing.T) {
	repository := newDailyLogRepositoryStub()
	repository.findErr = errors.New("io")
	service := NewDailyLogService(repository)
	if _, _, err := service.UpsertLog(1, mustParseDay("2024-03-04"), DailyLogInput{}); !errors.Is(err, ErrDailyLogLoadFailed) {
		t.Fatalf("expected ErrDailyLogLoadFailed, got %v", err)
	}

	repository = newDailyLogRepositoryStub()
	repository.createErr = errors.New("full")
	service = NewDailyLogService(repository)
	if _, _, err := service.UpsertLog(1, mustParseDay("2024-03-04"), DailyLogInput{}); !errors.Is(err, ErrDailyLogCreateFailed) {
		t.Fatalf("expected ErrDailyLogCreateFailed, got %v", err)
	}
}
