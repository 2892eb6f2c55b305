package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/ovumcy/internal/models"
	"gorm.io/gorm"
)

const dailyLogOrder = "date DESC, id DESC"

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

// ownedLogsBetween limits a query to one user's logs in [fromStart, toEnd).
// A nil bound is open.
func ownedLogsBetween(userID uint, fromStart *time.Time, toEnd *time.Time) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		query = query.Where("user_id = ?", userID)
		if fromStart != nil {
			query = query.Where("date >= ?", *fromStart)
		}
		if toEnd != nil {
			query = query.Where("date < ?", *toEnd)
		}
		return query
	}
}

// ListByUser returns logs newest first.
func (repo *DailyLogRepository) ListByUser(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	err := repo.database.
		Scopes(ownedLogsBetween(userID, fromStart, toEnd)).
		Order(dailyLogOrder).
		Find(&logs).Error
	return logs, err
}

// ListRecentByUser returns at most limit logs, newest first.
func (repo *DailyLogRepository) ListRecentByUser(userID uint, limit int) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0, limit)
	err := repo.database.
		Scopes(ownedLogsBetween(userID, nil, nil)).
		Order(dailyLogOrder).
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (repo *DailyLogRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error) {
	var entry models.DailyLog
	err := repo.database.
		Scopes(ownedLogsBetween(userID, &dayStart, &dayEnd)).
		Order(dailyLogOrder).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DailyLog{}, false, nil
	}
	if err != nil {
		return models.DailyLog{}, false, err
	}
	return entry, true, nil
}

func (repo *DailyLogRepository) Create(entry *models.DailyLog) error {
	return repo.database.Create(entry).Error
}

func (repo *DailyLogRepository) Save(entry *models.DailyLog) error {
	return repo.database.Save(entry).Error
}

func (repo *DailyLogRepository) DeleteByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	result := repo.database.
		Scopes(ownedLogsBetween(userID, &dayStart, &dayEnd)).
		Delete(&models.DailyLog{})
	return result.RowsAffected > 0, result.Error
}
