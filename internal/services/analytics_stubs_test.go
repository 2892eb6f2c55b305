package services

import (
	"errors"
	"sort"
	"time"

	"github.com/terraincognita07/ovumcy/internal/models"
	"gorm.io/gorm"
)

type cycleHistoryStub struct {
	cycles []models.Cycle
	err    error
	calls  int
}

func (stub *cycleHistoryStub) ListByUser(uint) ([]models.Cycle, error) {
	stub.calls++
	if stub.err != nil {
		return nil, stub.err
	}
	return append([]models.Cycle(nil), stub.cycles...), nil
}

type predictionStoreStub struct {
	rows       []models.CyclePrediction
	nextID     uint
	replaceErr error
	findErr    error
	writes     int
}

func (stub *predictionStoreStub) FindActiveByUser(userID uint) (models.CyclePrediction, bool, error) {
	if stub.findErr != nil {
		return models.CyclePrediction{}, false, stub.findErr
	}
	for _, row := range stub.rows {
		if row.UserID == userID && row.IsActive {
			return row, true, nil
		}
	}
	return models.CyclePrediction{}, false, nil
}

func (stub *predictionStoreStub) ReplaceActive(prediction *models.CyclePrediction) error {
	stub.writes++
	if stub.replaceErr != nil {
		return stub.replaceErr
	}
	for index := range stub.rows {
		if stub.rows[index].UserID == prediction.UserID {
			stub.rows[index].IsActive = false
		}
	}
	stub.nextID++
	prediction.ID = stub.nextID
	prediction.IsActive = true
	stub.rows = append(stub.rows, *prediction)
	return nil
}

func (stub *predictionStoreStub) activeCount(userID uint) int {
	count := 0
	for _, row := range stub.rows {
		if row.UserID == userID && row.IsActive {
			count++
		}
	}
	return count
}

type statisticsStoreStub struct {
	rows      map[uint]models.CycleStatistics
	upsertErr error
	findErr   error
	upserts   int
}

func newStatisticsStoreStub() *statisticsStoreStub {
	return &statisticsStoreStub{rows: make(map[uint]models.CycleStatistics)}
}

func (stub *statisticsStoreStub) Upsert(stats models.CycleStatistics) (models.CycleStatistics, error) {
	stub.upserts++
	if stub.upsertErr != nil {
		return models.CycleStatistics{}, stub.upsertErr
	}
	if existing, ok := stub.rows[stats.UserID]; ok {
		stats.ID = existing.ID
		stats.CreatedAt = existing.CreatedAt
	} else {
		stats.ID = uint(len(stub.rows) + 1)
		stats.CreatedAt = stats.LastCalculated
	}
	stub.rows[stats.UserID] = stats
	return stats, nil
}

func (stub *statisticsStoreStub) FindByUser(userID uint) (models.CycleStatistics, error) {
	if stub.findErr != nil {
		return models.CycleStatistics{}, stub.findErr
	}
	stats, ok := stub.rows[userID]
	if !ok {
		return models.CycleStatistics{}, gorm.ErrRecordNotFound
	}
	return stats, nil
}

type recentLogStub struct {
	logs      []models.DailyLog
	err       error
	lastLimit int
}

func (stub *recentLogStub) ListRecentByUser(_ uint, limit int) ([]models.DailyLog, error) {
	stub.lastLimit = limit
	if stub.err != nil {
		return nil, stub.err
	}
	if len(stub.logs) > limit {
		return append([]models.DailyLog(nil), stub.logs[:limit]...), nil
	}
	return append([]models.DailyLog(nil), stub.logs...), nil
}

type insightStoreStub struct {
	rows      []models.Insight
	createErr error
	updateErr error
}

func (stub *insightStoreStub) CreateBatch(insights []models.Insight) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	for _, insight := range insights {
		insight.ID = uint(len(stub.rows) + 1)
		stub.rows = append(stub.rows, insight)
	}
	return nil
}

func (stub *insightStoreStub) ListVisibleByUser(userID uint) ([]models.Insight, error) {
	visible := make([]models.Insight, 0)
	for index := len(stub.rows) - 1; index >= 0; index-- {
		row := stub.rows[index]
		if row.UserID == userID && !row.IsDismissed {
			visible = append(visible, row)
		}
	}
	return visible, nil
}

func (stub *insightStoreStub) CountUnread(userID uint) (int64, error) {
	var count int64
	for _, row := range stub.rows {
		if row.UserID == userID && !row.IsDismissed && !row.IsRead {
			count++
		}
	}
	return count, nil
}

func (stub *insightStoreStub) FindByIDForUser(userID uint, insightID uint) (models.Insight, error) {
	for _, row := range stub.rows {
		if row.ID == insightID && row.UserID == userID {
			return row, nil
		}
	}
	return models.Insight{}, gorm.ErrRecordNotFound
}

func (stub *insightStoreStub) MarkRead(insight *models.Insight, readAt time.Time) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	insight.IsRead = true
	insight.ReadAt = &readAt
	stub.replace(*insight)
	return nil
}

func (stub *insightStoreStub) Dismiss(insight *models.Insight) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	insight.IsDismissed = true
	stub.replace(*insight)
	return nil
}

func (stub *insightStoreStub) replace(insight models.Insight) {
	for index := range stub.rows {
		if stub.rows[index].ID == insight.ID {
			stub.rows[index] = insight
		}
	}
}

type cycleRepositoryStub struct {
	cycles    []models.Cycle
	nextID    uint
	createErr error
	saveErr   error
	saves     int
}

func (stub *cycleRepositoryStub) sorted(userID uint) []models.Cycle {
	owned := make([]models.Cycle, 0)
	for _, cycle := range stub.cycles {
		if cycle.UserID == userID {
			owned = append(owned, cycle)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].StartDate.Before(owned[j].StartDate)
	})
	return owned
}

func (stub *cycleRepositoryStub) ListByUser(userID uint) ([]models.Cycle, error) {
	return stub.sorted(userID), nil
}

func (stub *cycleRepositoryStub) ListByUserDesc(userID uint) ([]models.Cycle, error) {
	owned := stub.sorted(userID)
	for i, j := 0, len(owned)-1; i < j; i, j = i+1, j-1 {
		owned[i], owned[j] = owned[j], owned[i]
	}
	return owned, nil
}

func (stub *cycleRepositoryStub) FindByIDForUser(userID uint, cycleID uint) (models.Cycle, error) {
	for _, cycle := range stub.cycles {
		if cycle.ID == cycleID && cycle.UserID == userID {
			return cycle, nil
		}
	}
	return models.Cycle{}, gorm.ErrRecordNotFound
}

func (stub *cycleRepositoryStub) FindActiveByUser(userID uint) (models.Cycle, bool, error) {
	for _, cycle := range stub.cycles {
		if cycle.UserID == userID && cycle.IsActive {
			return cycle, true, nil
		}
	}
	return models.Cycle{}, false, nil
}

func (stub *cycleRepositoryStub) ExistsByUserAndStartDate(userID uint, startDate time.Time) (bool, error) {
	for _, cycle := range stub.cycles {
		if cycle.UserID == userID && cycle.StartDate.Equal(startDate) {
			return true, nil
		}
	}
	return false, nil
}

func (stub *cycleRepositoryStub) CreateAndActivate(cycle *models.Cycle) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	for index := range stub.cycles {
		if stub.cycles[index].UserID == cycle.UserID {
			stub.cycles[index].IsActive = false
		}
	}
	stub.nextID++
	cycle.ID = stub.nextID
	cycle.IsActive = true
	stub.cycles = append(stub.cycles, *cycle)
	return nil
}

func (stub *cycleRepositoryStub) Save(cycle *models.Cycle) error {
	stub.saves++
	if stub.saveErr != nil {
		return stub.saveErr
	}
	for index := range stub.cycles {
		if stub.cycles[index].ID == cycle.ID {
			stub.cycles[index] = *cycle
			return nil
		}
	}
	return errors.New("cycle not stored")
}

func (stub *cycleRepositoryStub) DeleteForUser(userID uint, cycleID uint) (bool, error) {
	for index, cycle := range stub.cycles {
		if cycle.ID == cycleID && cycle.UserID == userID {
			stub.cycles = append(stub.cycles[:index], stub.cycles[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type outcomeRecorderStub struct {
	starts []time.Time
	err    error
}

func (stub *outcomeRecorderStub) RecordActualStart(_ uint, started time.Time) error {
	stub.starts = append(stub.starts, started)
	return stub.err
}

func moodLog(mood string) models.DailyLog {
	if mood == "" {
		return models.DailyLog{}
	}
	value := mood
	return models.DailyLog{Mood: &value}
}

func moodLogs(negative int, positive int, withoutMood int) []models.DailyLog {
	logs := make([]models.DailyLog, 0, negative+positive+withoutMood)
	for i := 0; i < negative; i++ {
		if i%2 == 0 {
			logs = append(logs, moodLog(models.MoodBad))
		} else {
			logs = append(logs, moodLog(models.MoodTerrible))
		}
	}
	for i := 0; i < positive; i++ {
		logs = append(logs, moodLog(models.MoodGood))
	}
	for i := 0; i < withoutMood; i++ {
		logs = append(logs, moodLog(""))
	}
	return logs
}

func workedExampleCycles() []models.Cycle {
	cycles := []models.Cycle{
		makeCycle("2024-01-01", "2024-01-05"),
		makeCycle("2024-01-29", "2024-02-02"),
		makeCycle("2024-02-26", "2024-03-01"),
	}
	for index := range cycles {
		cycles[index].PeriodLength = intPtr(5)
	}
	return cycles
}
