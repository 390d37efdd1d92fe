package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type PeriodCycleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cycle *domain.PeriodCycle) (*domain.PeriodCycle, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.PeriodCycle, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type periodCycleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPeriodCycleRepo(db *gorm.DB, baseLog *logger.Logger) PeriodCycleRepo {
	return &periodCycleRepo{db: db, log: baseLog.With("repo", "PeriodCycleRepo")}
}

func (r *periodCycleRepo) Create(ctx context.Context, tx *gorm.DB, cycle *domain.PeriodCycle) (*domain.PeriodCycle, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if cycle == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(cycle).Error; err != nil {
		return nil, err
	}
	return cycle, nil
}

func (r *periodCycleRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.PeriodCycle, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.PeriodCycle
	if err := transaction.WithContext(ctx).
		Order("start_date DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *periodCycleRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.PeriodCycle{}).Error
}

type WaterIntakeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *domain.WaterIntake) (*domain.WaterIntake, error)
	ListBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*domain.WaterIntake, error)
}

type waterIntakeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWaterIntakeRepo(db *gorm.DB, baseLog *logger.Logger) WaterIntakeRepo {
	return &waterIntakeRepo{db: db, log: baseLog.With("repo", "WaterIntakeRepo")}
}

func (r *waterIntakeRepo) Create(ctx context.Context, tx *gorm.DB, entry *domain.WaterIntake) (*domain.WaterIntake, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if entry == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *waterIntakeRepo) ListBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*domain.WaterIntake, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.WaterIntake
	if err := transaction.WithContext(ctx).
		Where("logged_at >= ? AND logged_at < ?", from, to).
		Order("logged_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type StepsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *domain.StepsEntry) (*domain.StepsEntry, error)
	ListBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*domain.StepsEntry, error)
}

type stepsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStepsRepo(db *gorm.DB, baseLog *logger.Logger) StepsRepo {
	return &stepsRepo{db: db, log: baseLog.With("repo", "StepsRepo")}
}

func (r *stepsRepo) Create(ctx context.Context, tx *gorm.DB, entry *domain.StepsEntry) (*domain.StepsEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if entry == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *stepsRepo) ListBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]*domain.StepsEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.StepsEntry
	if err := transaction.WithContext(ctx).
		Where("logged_at >= ? AND logged_at < ?", from, to).
		Order("logged_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
