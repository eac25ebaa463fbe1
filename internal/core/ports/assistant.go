package ports

import (
	"context"

	"github.com/vetcard/vetcard-api/internal/core/domain"
)

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Sender string `json:"sender"` // "user" or "assistant"
	Text   string `json:"text"`
}

// ChatInput is an authenticated assistant request.
type ChatInput struct {
	Message        string
	ConversationID string
	History        []ChatMessage
}

// ChatReply is the assistant's answer, with an optional reminder suggestion
// extracted from the message.
type ChatReply struct {
	ConversationID     string           `json:"conversation_id"`
	Response           string           `json:"response"`
	ReminderSuggestion *domain.Reminder `json:"reminder_suggestion,omitempty"`
	Source             string           `json:"source"` // "model", "fallback" or "cache"
}

// ChatModel is the outbound interface to the external language-model service.
type ChatModel interface {
	Complete(ctx context.Context, system string, history []ChatMessage, message string) (string, error)
}

// ReplyCache stores assistant answers keyed by user and normalized question.
type ReplyCache interface {
	Get(ctx context.Context, userID, message string) (string, bool, error)
	Put(ctx context.Context, userID, message, reply string) error
}

type AssistantService interface {
	Chat(ctx context.Context, user *domain.User, input ChatInput) (*ChatReply, error)
}
