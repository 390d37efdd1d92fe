package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type AssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assessment *domain.Assessment) (*domain.Assessment, error)
	GetLatest(ctx context.Context, tx *gorm.DB) (*domain.Assessment, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Assessment, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (r *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessment *domain.Assessment) (*domain.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if assessment == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(assessment).Error; err != nil {
		return nil, err
	}
	return assessment, nil
}

func (r *assessmentRepo) GetLatest(ctx context.Context, tx *gorm.DB) (*domain.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var assessment domain.Assessment
	err := transaction.WithContext(ctx).
		Order("completed_at DESC").
		Limit(1).
		Find(&assessment).Error
	if err != nil {
		return nil, err
	}
	if assessment.ID == uuid.Nil {
		return nil, nil
	}
	return &assessment, nil
}

func (r *assessmentRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Assessment
	if err := transaction.WithContext(ctx).
		Order("completed_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
