package db

import (
	"github.com/terraincognita07/ovumcy/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatisticsRepository struct {
	database *gorm.DB
}

func NewStatisticsRepository(database *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{database: database}
}

var statisticsUpsertColumns = []string{
	"average_cycle_length",
	"shortest_cycle_length",
	"longest_cycle_length",
	"cycle_regularity_score",
	"average_period_length",
	"shortest_period_length",
	"longest_period_length",
	"total_cycles_tracked",
	"complete_cycles_count",
	"last_calculated",
}

// Upsert writes stats as the single statistics row of its owner and reloads
// it, so the returned row carries the persisted id and created_at.
func (repo *StatisticsRepository) Upsert(stats models.CycleStatistics) (models.CycleStatistics, error) {
	stats.ID = 0
	if err := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(statisticsUpsertColumns),
	}).Create(&stats).Error; err != nil {
		return models.CycleStatistics{}, err
	}

	return repo.FindByUser(stats.UserID)
}

func (repo *StatisticsRepository) FindByUser(userID uint) (models.CycleStatistics, error) {
	var stats models.CycleStatistics
	if err := repo.database.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return models.CycleStatistics{}, err
	}
	return stats, nil
}
