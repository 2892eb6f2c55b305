package models

import "time"

const AlgorithmAverage = "average"

type CyclePrediction struct {
	ID                          uint       `gorm:"primaryKey"`
	UserID                      uint       `gorm:"not null;index"`
	PredictedPeriodStart        time.Time  `gorm:"type:date;not null"`
	PredictedPeriodEnd          time.Time  `gorm:"type:date;not null"`
	PredictedOvulationDate      *time.Time `gorm:"type:date"`
	PredictedFertileWindowStart *time.Time `gorm:"type:date"`
	PredictedFertileWindowEnd   *time.Time `gorm:"type:date"`
	ConfidenceScore             float64    `gorm:"not null;default:0"`
	AlgorithmUsed               string     `gorm:"not null;default:average"`
	BasedOnCyclesCount          int        `gorm:"not null;default:0"`
	IsActive                    bool       `gorm:"not null"`
	ActualPeriodStarted         *time.Time `gorm:"type:date"`
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

func (CyclePrediction) TableName() string {
	return "cycle_predictions"
}
