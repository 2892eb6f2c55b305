package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/ovumcy/internal/models"
	"gorm.io/gorm"
)

const (
	irregularityMinCycles = 3
	irregularityThreshold = 0.5
)

// InsightRule inspects one aspect of a user's history and may emit a single
// unsaved insight. Rules never depend on each other.
type InsightRule interface {
	Name() string
	Evaluate(userID uint) (models.Insight, bool, error)
}

type InsightStatisticsReader interface {
	FindByUser(userID uint) (models.CycleStatistics, error)
}

type RecentLogReader interface {
	ListRecentByUser(userID uint, limit int) ([]models.DailyLog, error)
}

type IrregularityRule struct {
	statistics InsightStatisticsReader
}

func NewIrregularityRule(statistics InsightStatisticsReader) *IrregularityRule {
	return &IrregularityRule{statistics: statistics}
}

func (rule *IrregularityRule) Name() string {
	return "irregularity"
}

func (rule *IrregularityRule) Evaluate(userID uint) (models.Insight, bool, error) {
	stats, err := rule.statistics.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Insight{}, false, nil
	}
	if err != nil {
		return models.Insight{}, false, fmt.Errorf("%w: %v", ErrStatisticsLoadFailed, err)
	}

	insight, fired := DetectIrregularity(stats)
	return insight, fired, nil
}

// DetectIrregularity fires on stored statistics covering at least three
// cycles whose regularity score is below 0.5.
func DetectIrregularity(stats models.CycleStatistics) (models.Insight, bool) {
	if stats.TotalCyclesTracked < irregularityMinCycles || stats.CycleRegularityScore >= irregularityThreshold {
		return models.Insight{}, false
	}

	return models.Insight{
		Category: models.InsightCategoryCycle,
		Priority: models.InsightPriorityMedium,
		Title:    "Irregular Cycle Pattern Detected",
		Description: fmt.Sprintf(
			"Your cycles vary significantly (between %d and %d days). Consider consulting with a healthcare provider if this concerns you.",
			stats.ShortestCycleLength,
			stats.LongestCycleLength,
		),
	}, true
}

type MoodPatternRule struct {
	logs RecentLogReader
}

func NewMoodPatternRule(logs RecentLogReader) *MoodPatternRule {
	return &MoodPatternRule{logs: logs}
}

func (rule *MoodPatternRule) Name() string {
	return "mood_pattern"
}

func (rule *MoodPatternRule) Evaluate(userID uint) (models.Insight, bool, error) {
	logs, err := rule.logs.ListRecentByUser(userID, MoodInsightWindow)
	if err != nil {
		return models.Insight{}, false, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}

	insight, fired := DetectMoodPattern(logs)
	return insight, fired, nil
}

// DetectMoodPattern fires when strictly more than half of the logs that carry
// a mood are bad or terrible. Logs without a mood are ignored.
func DetectMoodPattern(logs []models.DailyLog) (models.Insight, bool) {
	withMood := 0
	negative := 0
	for _, entry := range logs {
		if entry.Mood == nil || *entry.Mood == "" {
			continue
		}
		withMood++
		if models.IsNegativeMood(*entry.Mood) {
			negative++
		}
	}

	if withMood == 0 || 2*negative <= withMood {
		return models.Insight{}, false
	}

	return models.Insight{
		Category:    models.InsightCategoryMood,
		Priority:    models.InsightPriorityHigh,
		Title:       "Mood Pattern Needs Attention",
		Description: "You've been experiencing predominantly negative moods. Consider speaking with a healthcare provider about your emotional wellbeing.",
	}, true
}
