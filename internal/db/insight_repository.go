package db

import (
	"time"

	"github.com/terraincognita07/ovumcy/internal/models"
	"gorm.io/gorm"
)

type InsightRepository struct {
	database *gorm.DB
}

func NewInsightRepository(database *gorm.DB) *InsightRepository {
	return &InsightRepository{database: database}
}

func (repo *InsightRepository) CreateBatch(insights []models.Insight) error {
	if len(insights) == 0 {
		return nil
	}
	return repo.database.Create(&insights).Error
}

// ListVisibleByUser returns non-dismissed insights, newest first.
func (repo *InsightRepository) ListVisibleByUser(userID uint) ([]models.Insight, error) {
	insights := make([]models.Insight, 0)
	if err := repo.database.
		Where("user_id = ? AND is_dismissed = ?", userID, false).
		Order("created_at DESC, id DESC").
		Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (repo *InsightRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Insight{}).
		Where("user_id = ? AND is_dismissed = ? AND is_read = ?", userID, false, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *InsightRepository) FindByIDForUser(userID uint, insightID uint) (models.Insight, error) {
	var insight models.Insight
	if err := repo.database.Where("id = ? AND user_id = ?", insightID, userID).First(&insight).Error; err != nil {
		return models.Insight{}, err
	}
	return insight, nil
}

func (repo *InsightRepository) MarkRead(insight *models.Insight, readAt time.Time) error {
	insight.IsRead = true
	insight.ReadAt = &readAt
	return repo.database.Model(insight).Select("is_read", "read_at").Updates(insight).Error
}

func (repo *InsightRepository) Dismiss(insight *models.Insight) error {
	insight.IsDismissed = true
	return repo.database.Model(insight).Select("is_dismissed").Updates(insight).Error
}
