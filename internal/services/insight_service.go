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
	ErrInsightNotFound     = errors.New("insight not found")
	ErrInsightLoadFailed   = errors.New("load insights failed")
	ErrInsightSaveFailed   = errors.New("save insight failed")
	ErrInsightUpdateFailed = errors.New("update insight failed")
)

type InsightStore interface {
	CreateBatch(insights []models.Insight) error
	ListVisibleByUser(userID uint) ([]models.Insight, error)
	CountUnread(userID uint) (int64, error)
	FindByIDForUser(userID uint, insightID uint) (models.Insight, error)
	MarkRead(insight *models.Insight, readAt time.Time) error
	Dismiss(insight *models.Insight) error
}

type InsightList struct {
	Insights    []models.Insight
	UnreadCount int64
}

type InsightService struct {
	insights InsightStore
	rules    []InsightRule
}

func NewInsightService(insights InsightStore, rules ...InsightRule) *InsightService {
	return &InsightService{
		insights: insights,
		rules:    rules,
	}
}

// GenerateInsights runs every rule and stores what fired, stamped with today.
func (service *InsightService) GenerateInsights(userID uint, today time.Time) ([]models.Insight, error) {
	dataUntil := CalendarDay(today)

	generated := make([]models.Insight, 0, len(service.rules))
	for _, rule := range service.rules {
		insight, fired, err := rule.Evaluate(userID)
		if err != nil {
			return nil, fmt.Errorf("insight rule %s: %w", rule.Name(), err)
		}
		if !fired {
			continue
		}

		insight.UserID = userID
		insight.GeneratedBy = models.InsightGeneratedBySystem
		insight.BasedOnDataUntil = &dataUntil
		generated = append(generated, insight)
	}

	if err := service.insights.CreateBatch(generated); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsightSaveFailed, err)
	}
	for _, insight := range generated {
		metrics.RecordInsight(insight.Category)
	}
	return generated, nil
}

func (service *InsightService) ListInsights(userID uint) (InsightList, error) {
	insights, err := service.insights.ListVisibleByUser(userID)
	if err != nil {
		return InsightList{}, fmt.Errorf("%w: %v", ErrInsightLoadFailed, err)
	}
	unread, err := service.insights.CountUnread(userID)
	if err != nil {
		return InsightList{}, fmt.Errorf("%w: %v", ErrInsightLoadFailed, err)
	}
	return InsightList{Insights: insights, UnreadCount: unread}, nil
}

func (service *InsightService) GetInsight(userID uint, insightID uint) (models.Insight, error) {
	insight, err := service.insights.FindByIDForUser(userID, insightID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Insight{}, ErrInsightNotFound
	}
	if err != nil {
		return models.Insight{}, fmt.Errorf("%w: %v", ErrInsightLoadFailed, err)
	}
	return insight, nil
}

// MarkRead sets read_at the first time an insight is read.
func (service *InsightService) MarkRead(userID uint, insightID uint, now time.Time) (models.Insight, error) {
	insight, err := service.GetInsight(userID, insightID)
	if err != nil {
		return models.Insight{}, err
	}
	if insight.IsRead && insight.ReadAt != nil {
		return insight, nil
	}
	if err := service.insights.MarkRead(&insight, now.UTC()); err != nil {
		return models.Insight{}, fmt.Errorf("%w: %v", ErrInsightUpdateFailed, err)
	}
	return insight, nil
}

func (service *InsightService) Dismiss(userID uint, insightID uint) (models.Insight, error) {
	insight, err := service.GetInsight(userID, insightID)
	if err != nil {
		return models.Insight{}, err
	}
	if insight.IsDismissed {
		return insight, nil
	}
	if err := service.insights.Dismiss(&insight); err != nil {
		return models.Insight{}, fmt.Errorf("%w: %v", ErrInsightUpdateFailed, err)
	}
	return insight, nil
}
