package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type RiskScoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, score *domain.RiskScore) (*domain.RiskScore, error)
	GetLatest(ctx context.Context, tx *gorm.DB) (*domain.RiskScore, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.RiskScore, error)
}

type riskScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRiskScoreRepo(db *gorm.DB, baseLog *logger.Logger) RiskScoreRepo {
	return &riskScoreRepo{db: db, log: baseLog.With("repo", "RiskScoreRepo")}
}

func (r *riskScoreRepo) Create(ctx context.Context, tx *gorm.DB, score *domain.RiskScore) (*domain.RiskScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if score == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(score).Error; err != nil {
		return nil, err
	}
	return score, nil
}

func (r *riskScoreRepo) GetLatest(ctx context.Context, tx *gorm.DB) (*domain.RiskScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var score domain.RiskScore
	err := transaction.WithContext(ctx).
		Order("calculated_at DESC").
		Limit(1).
		Find(&score).Error
	if err != nil {
		return nil, err
	}
	if score.ID == uuid.Nil {
		return nil, nil
	}
	return &score, nil
}

func (r *riskScoreRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.RiskScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.RiskScore
	if err := transaction.WithContext(ctx).
		Order("calculated_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
