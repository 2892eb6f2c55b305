package api

import (
	"time"

	"github.com/terraincognita07/ovumcy/internal/models"
)

type userView struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type cycleView struct {
	ID           uint      `json:"id"`
	StartDate    string    `json:"start_date"`
	EndDate      *string   `json:"end_date"`
	CycleLength  *int      `json:"cycle_length"`
	PeriodLength *int      `json:"period_length"`
	IsActive     bool      `json:"is_active"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type dailyLogView struct {
	ID             uint     `json:"id"`
	Date           string   `json:"date"`
	Mood           *string  `json:"mood"`
	Temperature    *float64 `json:"temperature"`
	Weight         *float64 `json:"weight"`
	SexualActivity bool     `json:"sexual_activity"`
	Notes          string   `json:"notes"`
}

type predictionView struct {
	ID                          uint      `json:"id"`
	PredictedPeriodStart        string    `json:"predicted_period_start"`
	PredictedPeriodEnd          string    `json:"predicted_period_end"`
	PredictedOvulationDate      *string   `json:"predicted_ovulation_date"`
	PredictedFertileWindowStart *string   `json:"predicted_fertile_window_start"`
	PredictedFertileWindowEnd   *string   `json:"predicted_fertile_window_end"`
	ConfidenceScore             float64   `json:"confidence_score"`
	AlgorithmUsed               string    `json:"algorithm_used"`
	BasedOnCyclesCount          int       `json:"based_on_cycles_count"`
	IsActive                    bool      `json:"is_active"`
	ActualPeriodStarted         *string   `json:"actual_period_started"`
	CreatedAt                   time.Time `json:"created_at"`
}

type statisticsView struct {
	AverageCycleLength   float64   `json:"average_cycle_length"`
	ShortestCycleLength  int       `json:"shortest_cycle_length"`
	LongestCycleLength   int       `json:"longest_cycle_length"`
	CycleRegularityScore float64   `json:"cycle_regularity_score"`
	AveragePeriodLength  float64   `json:"average_period_length"`
	ShortestPeriodLength int       `json:"shortest_period_length"`
	LongestPeriodLength  int       `json:"longest_period_length"`
	TotalCyclesTracked   int       `json:"total_cycles_tracked"`
	CompleteCyclesCount  int       `json:"complete_cycles_count"`
	LastCalculated       time.Time `json:"last_calculated"`
}

type insightView struct {
	ID               uint       `json:"id"`
	Category         string     `json:"category"`
	Priority         string     `json:"priority"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	IsRead           bool       `json:"is_read"`
	IsDismissed      bool       `json:"is_dismissed"`
	GeneratedBy      string     `json:"generated_by"`
	BasedOnDataUntil *string    `json:"based_on_data_until"`
	CreatedAt        time.Time  `json:"created_at"`
	ReadAt           *time.Time `json:"read_at"`
}

func formatDay(value time.Time) string {
	return value.Format(dateLayout)
}

func formatOptionalDay(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := formatDay(*value)
	return &formatted
}

func newUserView(user *models.User) userView {
	return userView{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt}
}

func newCycleView(cycle models.Cycle) cycleView {
	return cycleView{
		ID:           cycle.ID,
		StartDate:    formatDay(cycle.StartDate),
		EndDate:      formatOptionalDay(cycle.EndDate),
		CycleLength:  cycle.CycleLength,
		PeriodLength: cycle.PeriodLength,
		IsActive:     cycle.IsActive,
		Notes:        cycle.Notes,
		CreatedAt:    cycle.CreatedAt,
		UpdatedAt:    cycle.UpdatedAt,
	}
}

func newCycleViews(cycles []models.Cycle) []cycleView {
	views := make([]cycleView, 0, len(cycles))
	for _, cycle := range cycles {
		views = append(views, newCycleView(cycle))
	}
	return views
}

func newDailyLogView(entry models.DailyLog) dailyLogView {
	return dailyLogView{
		ID:             entry.ID,
		Date:           formatDay(entry.Date),
		Mood:           entry.Mood,
		Temperature:    entry.Temperature,
		Weight:         entry.Weight,
		SexualActivity: entry.SexualActivity,
		Notes:          entry.Notes,
	}
}

func newDailyLogViews(logs []models.DailyLog) []dailyLogView {
	views := make([]dailyLogView, 0, len(logs))
	for _, entry := range logs {
		views = append(views, newDailyLogView(entry))
	}
	return views
}

func newPredictionView(prediction models.CyclePrediction) predictionView {
	return predictionView{
		ID:                          prediction.ID,
		PredictedPeriodStart:        formatDay(prediction.PredictedPeriodStart),
		PredictedPeriodEnd:          formatDay(prediction.PredictedPeriodEnd),
		PredictedOvulationDate:      formatOptionalDay(prediction.PredictedOvulationDate),
		PredictedFertileWindowStart: formatOptionalDay(prediction.PredictedFertileWindowStart),
		PredictedFertileWindowEnd:   formatOptionalDay(prediction.PredictedFertileWindowEnd),
		ConfidenceScore:             prediction.ConfidenceScore,
		AlgorithmUsed:               prediction.AlgorithmUsed,
		BasedOnCyclesCount:          prediction.BasedOnCyclesCount,
		IsActive:                    prediction.IsActive,
		ActualPeriodStarted:         formatOptionalDay(prediction.ActualPeriodStarted),
		CreatedAt:                   prediction.CreatedAt,
	}
}

func newStatisticsView(stats models.CycleStatistics) statisticsView {
	return statisticsView{
		AverageCycleLength:   stats.AverageCycleLength,
		ShortestCycleLength:  stats.ShortestCycleLength,
		LongestCycleLength:   stats.LongestCycleLength,
		CycleRegularityScore: stats.CycleRegularityScore,
		AveragePeriodLength:  stats.AveragePeriodLength,
		ShortestPeriodLength: stats.ShortestPeriodLength,
		LongestPeriodLength:  stats.LongestPeriodLength,
		TotalCyclesTracked:   stats.TotalCyclesTracked,
		CompleteCyclesCount:  stats.CompleteCyclesCount,
		LastCalculated:       stats.LastCalculated,
	}
}

func newInsightView(insight models.Insight) insightView {
	return insightView{
		ID:               insight.ID,
		Category:         insight.Category,
		Priority:         insight.Priority,
		Title:            insight.Title,
		Description:      insight.Description,
		IsRead:           insight.IsRead,
		IsDismissed:      insight.IsDismissed,
		GeneratedBy:      insight.GeneratedBy,
		BasedOnDataUntil: formatOptionalDay(insight.BasedOnDataUntil),
		CreatedAt:        insight.CreatedAt,
		ReadAt:           insight.ReadAt,
	}
}

func newInsightViews(insights []models.Insight) []insightView {
	views := make([]insightView, 0, len(insights))
	for _, insight := range insights {
		views = append(views, newInsightView(insight))
	}
	return views
}
