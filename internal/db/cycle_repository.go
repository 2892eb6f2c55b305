package db

import (
	"time"

	"github.com/terraincognita07/ovumcy/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

// ListByUser returns cycles ordered by start date ascending.
func (repo *CycleRepository) ListByUser(userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("start_date ASC, id ASC").Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListByUserDesc(userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("start_date DESC, id DESC").Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) FindByIDForUser(userID uint, cycleID uint) (models.Cycle, error) {
	var cycle models.Cycle
	if err := repo.database.Where("id = ? AND user_id = ?", cycleID, userID).First(&cycle).Error; err != nil {
		return models.Cycle{}, err
	}
	return cycle, nil
}

func (repo *CycleRepository) FindActiveByUser(userID uint) (models.Cycle, bool, error) {
	cycle := models.Cycle{}
	result := repo.database.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("start_date DESC, id DESC").
		Limit(1).
		Find(&cycle)
	if result.Error != nil {
		return models.Cycle{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Cycle{}, false, nil
	}
	return cycle, true, nil
}

func (repo *CycleRepository) ExistsByUserAndStartDate(userID uint, startDate time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Cycle{}).
		Where("user_id = ? AND start_date = ?", userID, startDate).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// CreateAndActivate stores cycle as the only active cycle of its owner.
func (repo *CycleRepository) CreateAndActivate(cycle *models.Cycle) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Cycle{}).
			Where("user_id = ? AND is_active = ?", cycle.UserID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		cycle.IsActive = true
		return tx.Create(cycle).Error
	})
}

func (repo *CycleRepository) Save(cycle *models.Cycle) error {
	return repo.database.Save(cycle).Error
}

func (repo *CycleRepository) DeleteForUser(userID uint, cycleID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", cycleID, userID).Delete(&models.Cycle{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
