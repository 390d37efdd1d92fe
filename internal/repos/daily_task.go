package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type DailyTaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*domain.DailyTask) ([]*domain.DailyTask, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.DailyTask, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.DailyTask, error)
	SetCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, completed int) error
}

type dailyTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyTaskRepo(db *gorm.DB, baseLog *logger.Logger) DailyTaskRepo {
	return &dailyTaskRepo{db: db, log: baseLog.With("repo", "DailyTaskRepo")}
}

func (r *dailyTaskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*domain.DailyTask) ([]*domain.DailyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(tasks) == 0 {
		return []*domain.DailyTask{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *dailyTaskRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.DailyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var task domain.DailyTask
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *dailyTaskRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.DailyTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.DailyTask
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dailyTaskRepo) SetCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, completed int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.DailyTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed": completed,
		}).Error
}
