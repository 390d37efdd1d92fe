package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type InsightRepo interface {
	Create(ctx context.Context, tx *gorm.DB, insights []*domain.Insight) ([]*domain.Insight, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Insight, error)
}

type insightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsightRepo(db *gorm.DB, baseLog *logger.Logger) InsightRepo {
	return &insightRepo{db: db, log: baseLog.With("repo", "InsightRepo")}
}

func (r *insightRepo) Create(ctx context.Context, tx *gorm.DB, insights []*domain.Insight) ([]*domain.Insight, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(insights) == 0 {
		return []*domain.Insight{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (r *insightRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Insight, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Insight
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
