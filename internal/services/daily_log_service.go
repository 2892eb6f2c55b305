package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/ovumcy/internal/models"
)

var (
	ErrDailyLogNotFound     = errors.New("daily log not found")
	ErrDailyLogLoadFailed   = errors.New("load daily log failed")
	ErrDailyLogCreateFailed = errors.New("create daily log failed")
	ErrDailyLogUpdateFailed = errors.New("update daily log failed")
	ErrDailyLogDeleteFailed = errors.New("delete daily log failed")
	ErrDailyLogRangeInvalid = errors.New("daily log range invalid")
)

type DailyLogRepository interface {
	ListByUser(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error)
	Create(entry *models.DailyLog) error
	Save(entry *models.DailyLog) error
	DeleteByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (bool, error)
}

type DailyLogService struct {
	logs DailyLogRepository
}

func NewDailyLogService(logs DailyLogRepository) *DailyLogService {
	return &DailyLogService{logs: logs}
}

func DayRange(value time.Time) (time.Time, time.Time) {
	start := CalendarDay(value)
	return start, start.AddDate(0, 0, 1)
}

// UpsertLog writes the log of one calendar day, reporting whether it was new.
func (service *DailyLogService) UpsertLog(userID uint, day time.Time, input DailyLogInput) (models.DailyLog, bool, error) {
	input, err := NormalizeDailyLogInput(input)
	if err != nil {
		return models.DailyLog{}, false, err
	}

	dayStart, dayEnd := DayRange(day)
	entry, found, err := service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}

	if found {
		applyDailyLogInput(&entry, input)
		if err := service.logs.Save(&entry); err != nil {
			return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogUpdateFailed, err)
		}
		return entry, false, nil
	}

	entry = models.DailyLog{UserID: userID, Date: dayStart}
	applyDailyLogInput(&entry, input)
	if err := service.logs.Create(&entry); err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogCreateFailed, err)
	}
	return entry, true, nil
}

// ListLogs returns logs newest first. Both bounds are inclusive calendar days.
func (service *DailyLogService) ListLogs(userID uint, from *time.Time, to *time.Time) ([]models.DailyLog, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start, _ := DayRange(*from)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to)
		toEnd = &end
	}
	if fromStart != nil && toEnd != nil && !fromStart.Before(*toEnd) {
		return nil, ErrDailyLogRangeInvalid
	}

	logs, err := service.logs.ListByUser(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	return logs, nil
}

func (service *DailyLogService) GetLogByDate(userID uint, day time.Time) (models.DailyLog, error) {
	dayStart, dayEnd := DayRange(day)
	entry, found, err := service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	if !found {
		return models.DailyLog{}, ErrDailyLogNotFound
	}
	return entry, nil
}

func (service *DailyLogService) DeleteLogByDate(userID uint, day time.Time) error {
	dayStart, dayEnd := DayRange(day)
	deleted, err := service.logs.DeleteByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDailyLogDeleteFailed, err)
	}
	if !deleted {
		return ErrDailyLogNotFound
	}
	return nil
}

func applyDailyLogInput(entry *models.DailyLog, input DailyLogInput) {
	entry.Mood = input.Mood
	entry.Temperature = input.Temperature
	entry.Weight = input.Weight
	entry.SexualActivity = input.SexualActivity
	entry.Notes = input.Notes
}
