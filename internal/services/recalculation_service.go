package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/ovumcy/internal/logging"
	"github.com/terraincognita07/ovumcy/internal/metrics"
	"github.com/terraincognita07/ovumcy/internal/models"
)

var ErrRecalculationUsersFailed = errors.New("list users for recalculation failed")

type UserIDLister interface {
	ListIDs() ([]uint, error)
}

type StatisticsCalculator interface {
	CalculateStatistics(userID uint, now time.Time) (models.CycleStatistics, error)
}

type PredictionGenerator interface {
	GeneratePrediction(userID uint) (models.CyclePrediction, bool, error)
}

type InsightGenerator interface {
	GenerateInsights(userID uint, today time.Time) ([]models.Insight, error)
}

type RecalculationOptions struct {
	IncludeInsights bool
	Trigger         string
}

type RecalculationResult struct {
	UserID              uint
	PredictionGenerated bool
	InsightsGenerated   int
}

type RecalculationSummary struct {
	Users       int
	Predictions int
	Insights    int
	Failures    int
}

type RecalculationService struct {
	users       UserIDLister
	statistics  StatisticsCalculator
	predictions PredictionGenerator
	insights    InsightGenerator
}

func NewRecalculationService(users UserIDLister, statistics StatisticsCalculator, predictions PredictionGenerator, insights InsightGenerator) *RecalculationService {
	return &RecalculationService{
		users:       users,
		statistics:  statistics,
		predictions: predictions,
		insights:    insights,
	}
}

// RecalculateUser refreshes statistics before anything that reads them.
func (service *RecalculationService) RecalculateUser(userID uint, now time.Time, options RecalculationOptions) (RecalculationResult, error) {
	result := RecalculationResult{UserID: userID}

	if _, err := service.statistics.CalculateStatistics(userID, now); err != nil {
		return result, err
	}

	_, generated, err := service.predictions.GeneratePrediction(userID)
	if err != nil {
		return result, err
	}
	result.PredictionGenerated = generated

	if options.IncludeInsights && service.insights != nil {
		insights, err := service.insights.GenerateInsights(userID, now)
		if err != nil {
			return result, err
		}
		result.InsightsGenerated = len(insights)
	}
	return result, nil
}

// RecalculateAll walks every user sequentially. A failing user is logged and
// counted; the run goes on. Cancelling ctx stops between users.
func (service *RecalculationService) RecalculateAll(ctx context.Context, now time.Time, options RecalculationOptions) (RecalculationSummary, error) {
	started := time.Now()
	summary := RecalculationSummary{}
	if options.Trigger == "" {
		options.Trigger = "manual"
	}

	userIDs, err := service.users.ListIDs()
	if err != nil {
		return summary, fmt.Errorf("%w: %v", ErrRecalculationUsersFailed, err)
	}

	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			metrics.RecordRecalculation(options.Trigger, time.Since(started), summary.Failures)
			return summary, err
		}

		result, err := service.RecalculateUser(userID, now, options)
		summary.Users++
		if err != nil {
			summary.Failures++
			logging.Error().Err(err).Uint("user_id", userID).Msg("recalculation failed")
			continue
		}
		if result.PredictionGenerated {
			summary.Predictions++
		}
		summary.Insights += result.InsightsGenerated
	}

	metrics.RecordRecalculation(options.Trigger, time.Since(started), summary.Failures)
	logging.Info().
		Str("trigger", options.Trigger).
		Int("users", summary.Users).
		Int("predictions", summary.Predictions).
		Int("insights", summary.Insights).
		Int("failures", summary.Failures).
		Dur("duration", time.Since(started)).
		Msg("recalculation finished")
	return summary, nil
}
