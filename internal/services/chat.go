package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/ai"
	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/apierr"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/repos"
)

const chatHistoryWindow = 10

// ChatService persists the conversation and fetches the assistant reply.
// The reply path never surfaces a model failure to the caller; a canned
// response is returned (and flagged) instead.
type ChatService interface {
	Send(ctx context.Context, message string) (*domain.ChatMessage, error)
	History(ctx context.Context) ([]*domain.ChatMessage, error)
}

type chatService struct {
	db       *gorm.DB
	log      *logger.Logger
	adapter  ai.Adapter
	chatRepo repos.ChatMessageRepo
}

func NewChatService(db *gorm.DB, baseLog *logger.Logger, adapter ai.Adapter, chatRepo repos.ChatMessageRepo) ChatService {
	return &chatService{
		db:       db,
		log:      baseLog.With("service", "ChatService"),
		adapter:  adapter,
		chatRepo: chatRepo,
	}
}

func (s *chatService) Send(ctx context.Context, message string) (*domain.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apierr.Newf(http.StatusBadRequest, "message_required", "message is required")
	}

	recent, err := s.chatRepo.Recent(ctx, nil, chatHistoryWindow)
	if err != nil {
		s.log.Warn("Chat history load failed, replying without context", "error", err)
		recent = nil
	}
	history := make([]ai.ChatTurn, 0, len(recent))
	for _, m := range recent {
		history = append(history, ai.ChatTurn{Role: m.Role, Content: m.Content})
	}

	reply, usedFallback := s.adapter.ChatReply(ctx, message, history)

	userMsg := &domain.ChatMessage{
		ID:        uuid.New(),
		Role:      domain.ChatRoleUser,
		Content:   message,
		CreatedAt: time.Now(),
	}
	assistantMsg := &domain.ChatMessage{
		ID:        uuid.New(),
		Role:      domain.ChatRoleAssistant,
		Content:   reply,
		Fallback:  usedFallback,
		CreatedAt: time.Now(),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.chatRepo.Create(ctx, tx, userMsg); err != nil {
			return err
		}
		if _, err := s.chatRepo.Create(ctx, tx, assistantMsg); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "chat_persist_failed", err)
	}
	return assistantMsg, nil
}

func (s *chatService) History(ctx context.Context) ([]*domain.ChatMessage, error) {
	out, err := s.chatRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "chat_history_failed", err)
	}
	return out, nil
}
