package db

import (
	"time"

	"github.com/terraincognita07/ovumcy/internal/models"
	"gorm.io/gorm"
)

type PredictionRepository struct {
	database *gorm.DB
}

func NewPredictionRepository(database *gorm.DB) *PredictionRepository {
	return &PredictionRepository{database: database}
}

func (repo *PredictionRepository) FindActiveByUser(userID uint) (models.CyclePrediction, bool, error) {
	prediction := models.CyclePrediction{}
	result := repo.database.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id DESC").
		Limit(1).
		Find(&prediction)
	if result.Error != nil {
		return models.CyclePrediction{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CyclePrediction{}, false, nil
	}
	return prediction, true, nil
}

// ReplaceActive deactivates every active prediction of the owner and inserts
// prediction as the new active one, in a single transaction.
func (repo *PredictionRepository) ReplaceActive(prediction *models.CyclePrediction) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CyclePrediction{}).
			Where("user_id = ? AND is_active = ?", prediction.UserID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		prediction.IsActive = true
		return tx.Create(prediction).Error
	})
}

// RecordActualStart stores the observed period start on the active prediction,
// unless one was already recorded.
func (repo *PredictionRepository) RecordActualStart(userID uint, started time.Time) error {
	return repo.database.Model(&models.CyclePrediction{}).
		Where("user_id = ? AND is_active = ? AND actual_period_started IS NULL", userID, true).
		Update("actual_period_started", started).Error
}

func (repo *PredictionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.CyclePrediction{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
