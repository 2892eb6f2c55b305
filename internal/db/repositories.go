package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Cycles      *CycleRepository
	DailyLogs   *DailyLogRepository
	Predictions *PredictionRepository
	Statistics  *StatisticsRepository
	Insights    *InsightRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Cycles:      NewCycleRepository(database),
		DailyLogs:   NewDailyLogRepository(database),
		Predictions: NewPredictionRepository(database),
		Statistics:  NewStatisticsRepository(database),
		Insights:    NewInsightRepository(database),
	}
}
