package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/repos"
	"github.com/evelahealth/evela-backend/internal/repos/testutil"
	"github.com/evelahealth/evela-backend/internal/services"
)

func newChatService(t *testing.T, adapter *fakeAdapter) services.ChatService {
	t.Helper()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	return services.NewChatService(tx, log, adapter, repos.NewChatMessageRepo(tx, log))
}

func TestChatSendPersistsBothSides(t *testing.T) {
	svc := newChatService(t, &fakeAdapter{chatReply: "Sleep helps hormone balance."})
	ctx := context.Background()

	reply, err := svc.Send(ctx, "how does sleep affect hormones?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Role != domain.ChatRoleAssistant || reply.Fallback {
		t.Fatalf("reply = %+v", reply)
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Role != domain.ChatRoleUser || history[1].Role != domain.ChatRoleAssistant {
		t.Fatalf("history roles = %q, %q", history[0].Role, history[1].Role)
	}
}

func TestChatSendFallbackIsFlagged(t *testing.T) {
	// fakeAdapter with no canned reply routes through the keyword table.
	svc := newChatService(t, &fakeAdapter{})
	reply, err := svc.Send(context.Background(), "tell me about thyroid issues")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !reply.Fallback {
		t.Fatal("fallback reply not flagged")
	}
	if !strings.Contains(reply.Content, "Thyroid") {
		t.Fatalf("unexpected fallback content: %q", reply.Content)
	}
}

func TestChatSendRejectsEmptyMessage(t *testing.T) {
	svc := newChatService(t, &fakeAdapter{})
	if _, err := svc.Send(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty message")
	}
}
