package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type ReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, report *domain.Report) (*domain.Report, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Report, error)
	GetLatest(ctx context.Context, tx *gorm.DB) (*domain.Report, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Report, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	return &reportRepo{db: db, log: baseLog.With("repo", "ReportRepo")}
}

func (r *reportRepo) Create(ctx context.Context, tx *gorm.DB, report *domain.Report) (*domain.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if report == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (r *reportRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var report domain.Report
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) GetLatest(ctx context.Context, tx *gorm.DB) (*domain.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var report domain.Report
	err := transaction.WithContext(ctx).
		Order("uploaded_at DESC").
		Limit(1).
		Find(&report).Error
	if err != nil {
		return nil, err
	}
	if report.ID == uuid.Nil {
		return nil, nil
	}
	return &report, nil
}

func (r *reportRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Report
	if err := transaction.WithContext(ctx).
		Order("uploaded_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reportRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(ctx).
		Model(&domain.Report{}).
		Where("id = ?", id).
		Updates(updates).Error
}
