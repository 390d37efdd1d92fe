package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type ChatMessageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, msg *domain.ChatMessage) (*domain.ChatMessage, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.ChatMessage, error)
	Recent(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.ChatMessage, error)
}

type chatMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
	return &chatMessageRepo{db: db, log: baseLog.With("repo", "ChatMessageRepo")}
}

func (r *chatMessageRepo) Create(ctx context.Context, tx *gorm.DB, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if msg == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *chatMessageRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.ChatMessage
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Recent returns the last limit messages in chronological order.
func (r *chatMessageRepo) Recent(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.ChatMessage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		return []*domain.ChatMessage{}, nil
	}
	var out []*domain.ChatMessage
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
