package models

import "time"

const (
	InsightCategoryCycle   = "cycle"
	InsightCategorySymptom = "symptom"
	InsightCategoryMood    = "mood"
	InsightCategoryHealth  = "health"
	InsightCategoryGeneral = "general"
)

const (
	InsightPriorityLow    = "low"
	InsightPriorityMedium = "medium"
	InsightPriorityHigh   = "high"
)

const InsightGeneratedBySystem = "system"

type Insight struct {
	ID               uint       `gorm:"primaryKey"`
	UserID           uint       `gorm:"not null;index"`
	Category         string     `gorm:"not null"`
	Priority         string     `gorm:"not null;default:medium"`
	Title            string     `gorm:"not null"`
	Description      string     `gorm:"not null"`
	IsRead           bool       `gorm:"not null;default:false"`
	IsDismissed      bool       `gorm:"not null;default:false"`
	GeneratedBy      string     `gorm:"not null;default:system"`
	BasedOnDataUntil *time.Time `gorm:"type:date"`
	CreatedAt        time.Time
	ReadAt           *time.Time
}

func (Insight) TableName() string {
	return "insights"
}
