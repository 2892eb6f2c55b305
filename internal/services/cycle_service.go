package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/ovumcy/internal/logging"
	"github.com/terraincognita07/ovumcy/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCycleNotFound         = errors.New("cycle not found")
	ErrCycleStartDateExists  = errors.New("cycle start date already exists")
	ErrCycleEndBeforeStart   = errors.New("cycle end date before start date")
	ErrCycleStartDateMissing = errors.New("cycle start date missing")
	ErrCycleLoadFailed       = errors.New("load cycle failed")
	ErrCycleSaveFailed       = errors.New("save cycle failed")
	ErrCycleDeleteFailed     = errors.New("delete cycle failed")
)

type CycleRepository interface {
	ListByUser(userID uint) ([]models.Cycle, error)
	ListByUserDesc(userID uint) ([]models.Cycle, error)
	FindByIDForUser(userID uint, cycleID uint) (models.Cycle, error)
	FindActiveByUser(userID uint) (models.Cycle, bool, error)
	ExistsByUserAndStartDate(userID uint, startDate time.Time) (bool, error)
	CreateAndActivate(cycle *models.Cycle) error
	Save(cycle *models.Cycle) error
	DeleteForUser(userID uint, cycleID uint) (bool, error)
}

type PredictionOutcomeRecorder interface {
	RecordActualStart(userID uint, started time.Time) error
}

type CycleInput struct {
	StartDate time.Time
	EndDate   *time.Time
	Notes     string
}

// CycleUpdate carries the fields a client asked to change. ClearEndDate
// reopens a cycle whose end date was set by mistake.
type CycleUpdate struct {
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
	Notes        *string
}

type CycleService struct {
	cycles   CycleRepository
	outcomes PredictionOutcomeRecorder
}

func NewCycleService(cycles CycleRepository, outcomes PredictionOutcomeRecorder) *CycleService {
	return &CycleService{
		cycles:   cycles,
		outcomes: outcomes,
	}
}

// CreateCycle stores a new active cycle and marks every other cycle inactive.
// The newest-created cycle becomes active whatever its date, so a backfilled
// older cycle is reported as current. The start is recorded as the outcome of
// the active prediction only when it is later than every existing start.
func (service *CycleService) CreateCycle(userID uint, input CycleInput) (models.Cycle, error) {
	if input.StartDate.IsZero() {
		return models.Cycle{}, ErrCycleStartDateMissing
	}
	start := CalendarDay(input.StartDate)
	end, err := normalizeCycleEnd(start, input.EndDate)
	if err != nil {
		return models.Cycle{}, err
	}

	exists, err := service.cycles.ExistsByUserAndStartDate(userID, start)
	if err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	if exists {
		return models.Cycle{}, ErrCycleStartDateExists
	}
	latest, err := service.latestStart(userID)
	if err != nil {
		return models.Cycle{}, err
	}

	cycle := models.Cycle{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Notes:     strings.TrimSpace(input.Notes),
	}
	cycle.PeriodLength = periodLengthForCycle(cycle)
	if err := service.cycles.CreateAndActivate(&cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleSaveFailed, err)
	}

	if service.outcomes != nil && (latest.IsZero() || start.After(latest)) {
		if err := service.outcomes.RecordActualStart(userID, start); err != nil {
			logging.Warn().Err(err).Uint("user_id", userID).Msg("record prediction outcome failed")
		}
	}

	if err := service.refreshCycleLengths(userID); err != nil {
		return models.Cycle{}, err
	}
	return service.GetCycle(userID, cycle.ID)
}

// latestStart is the most recent stored start date, zero when there is none.
func (service *CycleService) latestStart(userID uint) (time.Time, error) {
	cycles, err := service.cycles.ListByUser(userID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	if len(cycles) == 0 {
		return time.Time{}, nil
	}
	return cycles[len(cycles)-1].StartDate, nil
}

func (service *CycleService) ListCycles(userID uint) ([]models.Cycle, error) {
	cycles, err := service.cycles.ListByUserDesc(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	return cycles, nil
}

func (service *CycleService) GetCycle(userID uint, cycleID uint) (models.Cycle, error) {
	cycle, err := service.cycles.FindByIDForUser(userID, cycleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Cycle{}, ErrCycleNotFound
	}
	if err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	return cycle, nil
}

func (service *CycleService) CurrentCycle(userID uint) (models.Cycle, error) {
	cycle, found, err := service.cycles.FindActiveByUser(userID)
	if err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	if !found {
		return models.Cycle{}, ErrCycleNotFound
	}
	return cycle, nil
}

func (service *CycleService) UpdateCycle(userID uint, cycleID uint, update CycleUpdate) (models.Cycle, error) {
	cycle, err := service.GetCycle(userID, cycleID)
	if err != nil {
		return models.Cycle{}, err
	}

	startChanged := false
	if update.StartDate != nil {
		start := CalendarDay(*update.StartDate)
		if !start.Equal(CalendarDay(cycle.StartDate)) {
			exists, err := service.cycles.ExistsByUserAndStartDate(userID, start)
			if err != nil {
				return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
			}
			if exists {
				return models.Cycle{}, ErrCycleStartDateExists
			}
			cycle.StartDate = start
			startChanged = true
		}
	}

	switch {
	case update.ClearEndDate:
		cycle.EndDate = nil
	case update.EndDate != nil:
		cycle.EndDate = update.EndDate
	}
	end, err := normalizeCycleEnd(cycle.StartDate, cycle.EndDate)
	if err != nil {
		return models.Cycle{}, err
	}
	cycle.EndDate = end
	cycle.PeriodLength = periodLengthForCycle(cycle)

	if update.Notes != nil {
		cycle.Notes = strings.TrimSpace(*update.Notes)
	}

	if err := service.cycles.Save(&cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleSaveFailed, err)
	}

	if startChanged {
		if err := service.refreshCycleLengths(userID); err != nil {
			return models.Cycle{}, err
		}
		return service.GetCycle(userID, cycle.ID)
	}
	return cycle, nil
}

func (service *CycleService) DeleteCycle(userID uint, cycleID uint) error {
	deleted, err := service.cycles.DeleteForUser(userID, cycleID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCycleDeleteFailed, err)
	}
	if !deleted {
		return ErrCycleNotFound
	}
	return service.refreshCycleLengths(userID)
}

// refreshCycleLengths stores, for every cycle, the distance to the next start
// date when it is a plausible cycle length. The newest cycle has none.
func (service *CycleService) refreshCycleLengths(userID uint) error {
	cycles, err := service.cycles.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}

	samples := CycleLengthSamples(cycles)
	for index := range cycles {
		var length *int
		if index < len(samples) && samples[index] >= models.MinCycleLength && samples[index] <= models.MaxCycleLength {
			value := samples[index]
			length = &value
		}
		if sameOptionalInt(cycles[index].CycleLength, length) {
			continue
		}
		cycles[index].CycleLength = length
		if err := service.cycles.Save(&cycles[index]); err != nil {
			return fmt.Errorf("%w: %v", ErrCycleSaveFailed, err)
		}
	}
	return nil
}

func normalizeCycleEnd(start time.Time, end *time.Time) (*time.Time, error) {
	if end == nil {
		return nil, nil
	}
	day := CalendarDay(*end)
	if day.Before(CalendarDay(start)) {
		return nil, ErrCycleEndBeforeStart
	}
	return &day, nil
}

// periodLengthForCycle returns end-start+1 when the cycle is closed and the
// value is within the plausible period range.
func periodLengthForCycle(cycle models.Cycle) *int {
	if cycle.EndDate == nil {
		return nil
	}
	length := inclusivePeriodLength(cycle.StartDate, *cycle.EndDate)
	if length < models.MinPeriodLength || length > models.MaxPeriodLength {
		return nil
	}
	return &length
}

func sameOptionalInt(a *int, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
