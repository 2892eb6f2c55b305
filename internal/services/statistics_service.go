package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/ovumcy/internal/metrics"
	"github.com/terraincognita07/ovumcy/internal/models"
	"gorm.io/gorm"
)

var (
	ErrStatisticsNotFound   = errors.New("statistics not found")
	ErrStatisticsLoadFailed = errors.New("load statistics failed")
	ErrStatisticsSaveFailed = errors.New("save statistics failed")
)

type StatisticsStore interface {
	Upsert(stats models.CycleStatistics) (models.CycleStatistics, error)
	FindByUser(userID uint) (models.CycleStatistics, error)
}

type StatisticsService struct {
	cycles     CycleHistoryReader
	statistics StatisticsStore
}

func NewStatisticsService(cycles CycleHistoryReader, statistics StatisticsStore) *StatisticsService {
	return &StatisticsService{
		cycles:     cycles,
		statistics: statistics,
	}
}

// CalculateStatistics recomputes and stores the statistics row of userID.
func (service *StatisticsService) CalculateStatistics(userID uint, now time.Time) (models.CycleStatistics, error) {
	cycles, err := service.cycles.ListByUser(userID)
	if err != nil {
		return models.CycleStatistics{}, fmt.Errorf("%w: %v", ErrCycleHistoryFailed, err)
	}

	stats := BuildStatistics(cycles)
	stats.UserID = userID
	stats.LastCalculated = now.UTC()

	stored, err := service.statistics.Upsert(stats)
	if err != nil {
		return models.CycleStatistics{}, fmt.Errorf("%w: %v", ErrStatisticsSaveFailed, err)
	}

	metrics.StatisticsCalculations.Inc()
	return stored, nil
}

func (service *StatisticsService) GetStatistics(userID uint) (models.CycleStatistics, error) {
	stats, err := service.statistics.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CycleStatistics{}, ErrStatisticsNotFound
	}
	if err != nil {
		return models.CycleStatistics{}, fmt.Errorf("%w: %v", ErrStatisticsLoadFailed, err)
	}
	return stats, nil
}

// BuildStatistics aggregates cycles ordered by start date ascending. Cycle
// fields stay zero below two records; period fields depend only on records
// with an end date.
func BuildStatistics(cycles []models.Cycle) models.CycleStatistics {
	stats := models.CycleStatistics{TotalCyclesTracked: len(cycles)}

	if samples := CycleLengthSamples(cycles); len(samples) > 0 {
		stats.AverageCycleLength = RoundTwoDecimals(averageInts(samples))
		stats.ShortestCycleLength, stats.LongestCycleLength = minMaxInts(samples)
		stats.CycleRegularityScore = RegularityScore(samples, RegularityScale)
	}

	periods := PeriodLengthSamples(cycles)
	stats.CompleteCyclesCount = len(periods)
	if len(periods) > 0 {
		stats.AveragePeriodLength = RoundTwoDecimals(averageInts(periods))
		stats.ShortestPeriodLength, stats.LongestPeriodLength = minMaxInts(periods)
	}

	return stats
}
