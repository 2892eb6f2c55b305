package models

import "time"

// CycleStatistics is the per-user aggregate row. There is at most one per user.
type CycleStatistics struct {
	ID                   uint    `gorm:"primaryKey"`
	UserID               uint    `gorm:"not null;uniqueIndex"`
	AverageCycleLength   float64 `gorm:"not null;default:0"`
	ShortestCycleLength  int     `gorm:"not null;default:0"`
	LongestCycleLength   int     `gorm:"not null;default:0"`
	CycleRegularityScore float64 `gorm:"not null;default:0"`
	AveragePeriodLength  float64 `gorm:"not null;default:0"`
	ShortestPeriodLength int     `gorm:"not null;default:0"`
	LongestPeriodLength  int     `gorm:"not null;default:0"`
	TotalCyclesTracked   int     `gorm:"not null;default:0"`
	CompleteCyclesCount  int     `gorm:"not null;default:0"`
	LastCalculated       time.Time
	CreatedAt            time.Time
}

func (CycleStatistics) TableName() string {
	return "cycle_statistics"
}
