package models

import "time"

const (
	MinPeriodLength = 2
	MaxPeriodLength = 10
	MinCycleLength  = 21
	MaxCycleLength  = 45

	DefaultCycleLength = 28
)

// Cycle is one menstrual cycle, identified by the first day of the period.
// EndDate marks the last period day, not the end of the whole cycle.
type Cycle struct {
	ID           uint       `gorm:"primaryKey"`
	UserID       uint       `gorm:"not null;uniqueIndex:uidx_cycles_user_start"`
	StartDate    time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_cycles_user_start"`
	EndDate      *time.Time `gorm:"type:date"`
	CycleLength  *int
	PeriodLength *int
	IsActive     bool `gorm:"not null"`
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Cycle) TableName() string {
	return "cycles"
}
