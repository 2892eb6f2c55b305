package db

import (
	"github.com/terraincognita07/ovumcy/internal/models"
	"gorm.io/gorm"
)

// accountData lists every table keyed by user_id, children first.
var accountData = []any{
	&models.Insight{},
	&models.CycleStatistics{},
	&models.CyclePrediction{},
	&models.DailyLog{},
	&models.Cycle{},
}

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

// withEmail matches stored addresses regardless of case or stray spaces.
func withEmail(email string) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		return query.Where("lower(trim(email)) = ?", email)
	}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	user := models.User{}
	err := repo.database.First(&user, userID).Error
	return user, err
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	user := models.User{}
	err := repo.database.Scopes(withEmail(email)).First(&user).Error
	return user, err
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var found int64
	err := repo.database.Model(&models.User{}).Scopes(withEmail(email)).Limit(1).Count(&found).Error
	return found > 0, err
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

// ListIDs returns every user id in ascending order.
func (repo *UserRepository) ListIDs() ([]uint, error) {
	var ids []uint
	err := repo.database.Model(&models.User{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{ID: userID}).Update("password_hash", passwordHash).Error
}

// DeleteAccountAndRelatedData removes the user and every row it owns in one
// transaction.
func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for _, model := range accountData {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
