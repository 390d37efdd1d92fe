package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type ParameterRepo interface {
	Create(ctx context.Context, tx *gorm.DB, params []*domain.Parameter) ([]*domain.Parameter, error)
	GetByReportID(ctx context.Context, tx *gorm.DB, reportID uuid.UUID) ([]*domain.Parameter, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Parameter, error)
}

type parameterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParameterRepo(db *gorm.DB, baseLog *logger.Logger) ParameterRepo {
	return &parameterRepo{db: db, log: baseLog.With("repo", "ParameterRepo")}
}

func (r *parameterRepo) Create(ctx context.Context, tx *gorm.DB, params []*domain.Parameter) ([]*domain.Parameter, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(params) == 0 {
		return []*domain.Parameter{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&params).Error; err != nil {
		return nil, err
	}
	return params, nil
}

func (r *parameterRepo) GetByReportID(ctx context.Context, tx *gorm.DB, reportID uuid.UUID) ([]*domain.Parameter, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Parameter
	if reportID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("extracted_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *parameterRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Parameter, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Parameter
	if err := transaction.WithContext(ctx).
		Order("extracted_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
