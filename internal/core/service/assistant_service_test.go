package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type stubChatModel struct {
	answer string
	err    error

	lastSystem string
	calls      int
}

func (m *stubChatModel) Complete(_ context.Context, system string, _ []ports.ChatMessage, _ string) (string, error) {
	m.calls++
	m.lastSystem = system
	return m.answer, m.err
}

type memReplyCache struct {
	entries map[string]string
}

func newMemReplyCache() *memReplyCache {
	return &memReplyCache{entries: make(map[string]string)}
}

func (c *memReplyCache) Get(_ context.Context, userID, message string) (string, bool, error) {
	reply, ok := c.entries[userID+"|"+message]
	return reply, ok, nil
}

func (c *memReplyCache) Put(_ context.Context, userID, message, reply string) error {
	c.entries[userID+"|"+message] = reply
	return nil
}

func assistantUser() *domain.User {
	return &domain.User{ID: "64f000000000000000000001", Username: "olga", Active: true}
}

func TestAssistantService_Chat_Model(t *testing.T) {
	model := &stubChatModel{answer: "give smaller portions twice a day"}
	cache := newMemReplyCache()
	pets := newStubPetRepo()
	svc := NewAssistantService(model, cache, pets, zerolog.Nop())

	reply, err := svc.Chat(context.Background(), assistantUser(), ports.ChatInput{Message: "how much should I feed?"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.Source != "model" {
		t.Fatalf("expected model source, got %s", reply.Source)
	}
	if reply.Response != model.answer {
		t.Fatalf("unexpected response: %s", reply.Response)
	}
	if reply.ConversationID == "" {
		t.Fatalf("conversation id not assigned")
	}
	if len(cache.entries) != 1 {
		t.Fatalf("expected answer to be cached")
	}
}

func TestAssistantService_Chat_CacheHit(t *testing.T) {
	model := &stubChatModel{answer: "fresh answer"}
	cache := newMemReplyCache()
	user := assistantUser()
	_ = cache.Put(context.Background(), user.ID, "cached question", "cached answer")

	svc := NewAssistantService(model, cache, newStubPetRepo(), zerolog.Nop())
	reply, err := svc.Chat(context.Background(), user, ports.ChatInput{Message: "cached question"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.Source != "cache" || reply.Response != "cached answer" {
		t.Fatalf("expected cache hit, got %+v", reply)
	}
	if model.calls != 0 {
		t.Fatalf("model must not be called on cache hit")
	}
}

func TestAssistantService_Chat_FallbackOnModelError(t *testing.T) {
	model := &stubChatModel{err: errors.New("connection refused")}
	svc := NewAssistantService(model, newMemReplyCache(), newStubPetRepo(), zerolog.Nop())

	reply, err := svc.Chat(context.Background(), assistantUser(), ports.ChatInput{Message: "when is the next vaccination?"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.Source != "fallback" {
		t.Fatalf("expected fallback source, got %s", reply.Source)
	}
	if !strings.Contains(strings.ToLower(reply.Response), "vaccin") {
		t.Fatalf("expected the vaccination fallback, got %q", reply.Response)
	}
}

func TestAssistantService_Chat_FallbackWithoutModel(t *testing.T) {
	svc := NewAssistantService(nil, nil, newStubPetRepo(), zerolog.Nop())

	reply, err := svc.Chat(context.Background(), assistantUser(), ports.ChatInput{Message: "hello"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.Source != "fallback" || reply.Response == "" {
		t.Fatalf("expected generic fallback, got %+v", reply)
	}
}

func TestAssistantService_Chat_ReminderSuggestion(t *testing.T) {
	svc := NewAssistantService(nil, nil, newStubPetRepo(), zerolog.Nop())
	user := assistantUser()

	reply, err := svc.Chat(context.Background(), user, ports.ChatInput{Message: "Rex needs a checkup soon"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.ReminderSuggestion == nil {
		t.Fatalf("expected a reminder suggestion")
	}
	if reply.ReminderSuggestion.UserID != user.ID || !reply.ReminderSuggestion.Planned {
		t.Fatalf("unexpected suggestion: %+v", reply.ReminderSuggestion)
	}

	reply, err = svc.Chat(context.Background(), user, ports.ChatInput{Message: "what toys are good?"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.ReminderSuggestion != nil {
		t.Fatalf("did not expect a suggestion for %q", "what toys are good?")
	}
}

func TestAssistantService_Chat_SystemPromptCarriesPets(t *testing.T) {
	model := &stubChatModel{answer: "ok"}
	pets := newStubPetRepo()
	user := assistantUser()
	if _, err := pets.Create(context.Background(), &domain.Pet{Name: "Murka", Breed: "siberian", OwnerID: user.ID}); err != nil {
		t.Fatalf("create pet: %v", err)
	}

	svc := NewAssistantService(model, newMemReplyCache(), pets, zerolog.Nop())
	if _, err := svc.Chat(context.Background(), user, ports.ChatInput{Message: "hi"}); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if !strings.Contains(model.lastSystem, "Murka") || !strings.Contains(model.lastSystem, "siberian") {
		t.Fatalf("system prompt missing pet records: %q", model.lastSystem)
	}
}

func TestAssistantService_Chat_KeepsConversationID(t *testing.T) {
	svc := NewAssistantService(nil, nil, newStubPetRepo(), zerolog.Nop())

	reply, err := svc.Chat(context.Background(), assistantUser(), ports.ChatInput{
		Message:        "hello again",
		ConversationID: "conv-123",
	})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.ConversationID != "conv-123" {
		t.Fatalf("conversation id not preserved: %s", reply.ConversationID)
	}
}
