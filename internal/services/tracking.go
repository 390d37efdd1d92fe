package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/apierr"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/repos"
)

// TrackingService covers the daily self-logged metrics: period cycles,
// water intake and step counts.
type TrackingService interface {
	LogPeriod(ctx context.Context, input PeriodInput) (*domain.PeriodCycle, error)
	ListPeriods(ctx context.Context) ([]*domain.PeriodCycle, error)
	DeletePeriod(ctx context.Context, id uuid.UUID) error
	LogWater(ctx context.Context, amountML int) (*domain.WaterIntake, *DayTotal, error)
	WaterToday(ctx context.Context) (*DayTotal, error)
	LogSteps(ctx context.Context, steps int) (*domain.StepsEntry, *DayTotal, error)
	StepsToday(ctx context.Context) (*DayTotal, error)
}

type PeriodInput struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	FlowLevel string     `json:"flow_level,omitempty"`
	Symptoms  string     `json:"symptoms,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

type DayTotal struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Entries int    `json:"entries"`
}

type trackingService struct {
	db         *gorm.DB
	log        *logger.Logger
	periodRepo repos.PeriodCycleRepo
	waterRepo  repos.WaterIntakeRepo
	stepsRepo  repos.StepsRepo
}

func NewTrackingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	periodRepo repos.PeriodCycleRepo,
	waterRepo repos.WaterIntakeRepo,
	stepsRepo repos.StepsRepo,
) TrackingService {
	return &trackingService{
		db:         db,
		log:        baseLog.With("service", "TrackingService"),
		periodRepo: periodRepo,
		waterRepo:  waterRepo,
		stepsRepo:  stepsRepo,
	}
}

func (s *trackingService) LogPeriod(ctx context.Context, input PeriodInput) (*domain.PeriodCycle, error) {
	if input.StartDate.IsZero() {
		return nil, apierr.Newf(http.StatusBadRequest, "start_date_required", "start_date is required")
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, apierr.Newf(http.StatusBadRequest, "invalid_date_range", "end_date is before start_date")
	}
	cycle := &domain.PeriodCycle{
		ID:        uuid.New(),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		FlowLevel: strings.TrimSpace(input.FlowLevel),
		Symptoms:  strings.TrimSpace(input.Symptoms),
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: time.Now(),
	}
	if _, err := s.periodRepo.Create(ctx, nil, cycle); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "period_create_failed", err)
	}
	return cycle, nil
}

func (s *trackingService) ListPeriods(ctx context.Context) ([]*domain.PeriodCycle, error) {
	out, err := s.periodRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "period_list_failed", err)
	}
	return out, nil
}

func (s *trackingService) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	if err := s.periodRepo.Delete(ctx, nil, id); err != nil {
		return apierr.New(http.StatusInternalServerError, "period_delete_failed", err)
	}
	return nil
}

func (s *trackingService) LogWater(ctx context.Context, amountML int) (*domain.WaterIntake, *DayTotal, error) {
	if amountML <= 0 {
		return nil, nil, apierr.Newf(http.StatusBadRequest, "invalid_amount", "amount_ml must be positive")
	}
	entry := &domain.WaterIntake{
		ID:        uuid.New(),
		AmountML:  amountML,
		LoggedAt:  time.Now(),
		CreatedAt: time.Now(),
	}
	if _, err := s.waterRepo.Create(ctx, nil, entry); err != nil {
		return nil, nil, apierr.New(http.StatusInternalServerError, "water_create_failed", err)
	}
	total, err := s.WaterToday(ctx)
	if err != nil {
		return nil, nil, err
	}
	return entry, total, nil
}

func (s *trackingService) WaterToday(ctx context.Context) (*DayTotal, error) {
	from, to := dayBounds(time.Now())
	entries, err := s.waterRepo.ListBetween(ctx, nil, from, to)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "water_list_failed", err)
	}
	total := &DayTotal{Date: from.Format("2006-01-02"), Entries: len(entries)}
	for _, e := range entries {
		total.Total += e.AmountML
	}
	return total, nil
}

func (s *trackingService) LogSteps(ctx context.Context, steps int) (*domain.StepsEntry, *DayTotal, error) {
	if steps <= 0 {
		return nil, nil, apierr.Newf(http.StatusBadRequest, "invalid_steps", "steps must be positive")
	}
	entry := &domain.StepsEntry{
		ID:        uuid.New(),
		Steps:     steps,
		LoggedAt:  time.Now(),
		CreatedAt: time.Now(),
	}
	if _, err := s.stepsRepo.Create(ctx, nil, entry); err != nil {
		return nil, nil, apierr.New(http.StatusInternalServerError, "steps_create_failed", err)
	}
	total, err := s.StepsToday(ctx)
	if err != nil {
		return nil, nil, err
	}
	return entry, total, nil
}

func (s *trackingService) StepsToday(ctx context.Context) (*DayTotal, error) {
	from, to := dayBounds(time.Now())
	entries, err := s.stepsRepo.ListBetween(ctx, nil, from, to)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "steps_list_failed", err)
	}
	total := &DayTotal{Date: from.Format("2006-01-02"), Entries: len(entries)}
	for _, e := range entries {
		total.Total += e.Steps
	}
	return total, nil
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.Add(24 * time.Hour)
}
