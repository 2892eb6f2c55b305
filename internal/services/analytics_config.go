package services

import "github.com/terraincognita07/ovumcy/internal/models"

const (
	// ConfidenceScale is the regularity divisor used for prediction confidence.
	ConfidenceScale = 7.0
	// RegularityScale is the regularity divisor used for stored statistics.
	RegularityScale = 10.0

	LutealPhaseDays     = 14
	FertileWindowRadius = 2

	MoodInsightWindow = 30
)

type AnalyticsConfig struct {
	MinCyclesForPrediction int
	DefaultCycleLength     int
}

func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		MinCyclesForPrediction: 3,
		DefaultCycleLength:     models.DefaultCycleLength,
	}
}

func (config AnalyticsConfig) normalized() AnalyticsConfig {
	defaults := DefaultAnalyticsConfig()
	if config.MinCyclesForPrediction <= 0 {
		config.MinCyclesForPrediction = defaults.MinCyclesForPrediction
	}
	if config.DefaultCycleLength <= 0 {
		config.DefaultCycleLength = defaults.DefaultCycleLength
	}
	return config
}
