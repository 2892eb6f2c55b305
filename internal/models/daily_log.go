package models

import "time"

const (
	MoodGreat    = "great"
	MoodGood     = "good"
	MoodOkay     = "okay"
	MoodBad      = "bad"
	MoodTerrible = "terrible"
)

type DailyLog struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"not null;uniqueIndex:uidx_daily_logs_user_date"`
	Date           time.Time `gorm:"type:date;not null;uniqueIndex:uidx_daily_logs_user_date"`
	Mood           *string
	Temperature    *float64
	Weight         *float64
	SexualActivity bool `gorm:"not null;default:false"`
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (DailyLog) TableName() string {
	return "daily_logs"
}

func IsNegativeMood(mood string) bool {
	return mood == MoodBad || mood == MoodTerrible
}
