package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/ovumcy/internal/logging"
	"github.com/terraincognita07/ovumcy/internal/metrics"
	"github.com/terraincognita07/ovumcy/internal/models"
)

var (
	ErrPredictionNotFound   = errors.New("prediction not found")
	ErrPredictionLoadFailed = errors.New("load prediction failed")
	ErrPredictionSaveFailed = errors.New("save prediction failed")
	ErrCycleHistoryFailed   = errors.New("load cycle history failed")
)

type CycleHistoryReader interface {
	ListByUser(userID uint) ([]models.Cycle, error)
}

type PredictionStore interface {
	FindActiveByUser(userID uint) (models.CyclePrediction, bool, error)
	ReplaceActive(prediction *models.CyclePrediction) error
}

type PredictionService struct {
	cycles      CycleHistoryReader
	predictions PredictionStore
	locks       *UserLocks
	config      AnalyticsConfig
}

func NewPredictionService(cycles CycleHistoryReader, predictions PredictionStore, locks *UserLocks, config AnalyticsConfig) *PredictionService {
	if locks == nil {
		locks = NewUserLocks()
	}
	return &PredictionService{
		cycles:      cycles,
		predictions: predictions,
		locks:       locks,
		config:      config.normalized(),
	}
}

// GeneratePrediction replaces the active prediction of userID with a fresh one.
// It reports false without touching storage when the history is too short.
func (service *PredictionService) GeneratePrediction(userID uint) (models.CyclePrediction, bool, error) {
	unlock := service.locks.Lock(userID)
	defer unlock()

	cycles, err := service.cycles.ListByUser(userID)
	if err != nil {
		return models.CyclePrediction{}, false, fmt.Errorf("%w: %v", ErrCycleHistoryFailed, err)
	}

	prediction, ok := BuildPrediction(cycles, service.config)
	if !ok {
		metrics.PredictionsSkipped.Inc()
		logging.Debug().
			Uint("user_id", userID).
			Int("cycles", len(cycles)).
			Msg("prediction skipped: insufficient cycle history")
		return models.CyclePrediction{}, false, nil
	}

	prediction.UserID = userID
	if err := service.predictions.ReplaceActive(&prediction); err != nil {
		return models.CyclePrediction{}, false, fmt.Errorf("%w: %v", ErrPredictionSaveFailed, err)
	}

	metrics.PredictionsGenerated.Inc()
	return prediction, true, nil
}

func (service *PredictionService) GetActivePrediction(userID uint) (models.CyclePrediction, error) {
	prediction, found, err := service.predictions.FindActiveByUser(userID)
	if err != nil {
		return models.CyclePrediction{}, fmt.Errorf("%w: %v", ErrPredictionLoadFailed, err)
	}
	if !found {
		return models.CyclePrediction{}, ErrPredictionNotFound
	}
	return prediction, nil
}

// BuildPrediction projects the next period from cycles ordered by start date
// ascending. The returned prediction has no owner or id yet.
func BuildPrediction(cycles []models.Cycle, config AnalyticsConfig) (models.CyclePrediction, bool) {
	config = config.normalized()
	if len(cycles) < config.MinCyclesForPrediction {
		return models.CyclePrediction{}, false
	}

	samples := CycleLengthSamples(cycles)
	if len(samples) == 0 {
		return models.CyclePrediction{}, false
	}

	averageCycle := int(averageInts(samples))

	// Without any recorded period length the cycle default is used as the
	// period length as well.
	averagePeriod := config.DefaultCycleLength
	if periodLengths := predictionPeriodLengths(cycles); len(periodLengths) > 0 {
		averagePeriod = int(averageInts(periodLengths))
	}

	last := cycles[len(cycles)-1]
	periodStart := addDays(last.StartDate, averageCycle)
	periodEnd := addDays(periodStart, averagePeriod-1)
	ovulation := addDays(periodStart, -LutealPhaseDays)
	fertileStart := addDays(ovulation, -FertileWindowRadius)
	fertileEnd := addDays(ovulation, FertileWindowRadius)

	return models.CyclePrediction{
		PredictedPeriodStart:        periodStart,
		PredictedPeriodEnd:          periodEnd,
		PredictedOvulationDate:      &ovulation,
		PredictedFertileWindowStart: &fertileStart,
		PredictedFertileWindowEnd:   &fertileEnd,
		ConfidenceScore:             RegularityScore(samples, ConfidenceScale),
		AlgorithmUsed:               models.AlgorithmAverage,
		BasedOnCyclesCount:          len(samples),
		IsActive:                    true,
	}, true
}
