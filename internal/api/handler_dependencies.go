package api

import (
	"github.com/terraincognita07/ovumcy/internal/db"
	"github.com/terraincognita07/ovumcy/internal/services"
	"gorm.io/gorm"
)

// Services holds every domain service wired over one set of repositories.
type Services struct {
	Auth          *services.AuthService
	Account       *services.AccountService
	Cycles        *services.CycleService
	DailyLogs     *services.DailyLogService
	Predictions   *services.PredictionService
	Statistics    *services.StatisticsService
	Insights      *services.InsightService
	Recalculation *services.RecalculationService
}

func NewServices(repositories *db.Repositories, analytics services.AnalyticsConfig) *Services {
	predictions := services.NewPredictionService(
		repositories.Cycles,
		repositories.Predictions,
		services.NewUserLocks(),
		analytics,
	)
	statistics := services.NewStatisticsService(repositories.Cycles, repositories.Statistics)
	insights := services.NewInsightService(
		repositories.Insights,
		services.NewIrregularityRule(repositories.Statistics),
		services.NewMoodPatternRule(repositories.DailyLogs),
	)

	return &Services{
		Auth:          services.NewAuthService(repositories.Users),
		Account:       services.NewAccountService(repositories.Users),
		Cycles:        services.NewCycleService(repositories.Cycles, repositories.Predictions),
		DailyLogs:     services.NewDailyLogService(repositories.DailyLogs),
		Predictions:   predictions,
		Statistics:    statistics,
		Insights:      insights,
		Recalculation: services.NewRecalculationService(repositories.Users, statistics, predictions, insights),
	}
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.services = NewServices(db.NewRepositories(database), handler.analytics)
	return handler
}

// Recalculation returns the batch service built over the handler's
// repositories and per-user locks.
func (handler *Handler) Recalculation() *services.RecalculationService {
	return handler.services.Recalculation
}
