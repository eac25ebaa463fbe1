package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vetcard/vetcard-api/internal/api/metrics"
	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

const systemPrompt = `You are VetCard, a professional veterinary assistant.
Help pet owners with questions about animal health, care, feeding and behaviour.
For serious conditions or emergencies always recommend seeing a veterinarian.
Use the owner's pet records below for personalised answers.
Keep answers short and structured; suggest concrete actions where appropriate.`

// AssistantService forwards pet-aware chat context to the external language
// model, with a Redis reply cache and a keyword fallback when the model is
// unreachable.
type AssistantService struct {
	model  ports.ChatModel
	cache  ports.ReplyCache
	pets   ports.PetRepository
	logger zerolog.Logger
}

func NewAssistantService(model ports.ChatModel, cache ports.ReplyCache, pets ports.PetRepository, logger zerolog.Logger) *AssistantService {
	return &AssistantService{model: model, cache: cache, pets: pets, logger: logger}
}

func (s *AssistantService) Chat(ctx context.Context, user *domain.User, input ports.ChatInput) (*ports.ChatReply, error) {
	reply := &ports.ChatReply{ConversationID: input.ConversationID}
	if reply.ConversationID == "" {
		reply.ConversationID = uuid.NewString()
	}
	reply.ReminderSuggestion = s.reminderSuggestion(user.ID, input.Message)

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, user.ID, input.Message); err == nil && ok {
			metrics.AssistantRequestsTotal.WithLabelValues("cache").Inc()
			reply.Response = cached
			reply.Source = "cache"
			return reply, nil
		}
	}

	system := s.buildSystemPrompt(ctx, user)
	if s.model != nil {
		answer, err := s.model.Complete(ctx, system, input.History, input.Message)
		if err == nil && strings.TrimSpace(answer) != "" {
			metrics.AssistantRequestsTotal.WithLabelValues("model").Inc()
			if s.cache != nil {
				if cerr := s.cache.Put(ctx, user.ID, input.Message, answer); cerr != nil {
					s.logger.Warn().Err(cerr).Msg("assistant cache put failed")
				}
			}
			reply.Response = answer
			reply.Source = "model"
			return reply, nil
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("model call failed, using fallback")
		}
	}

	metrics.AssistantRequestsTotal.WithLabelValues("fallback").Inc()
	reply.Response = fallbackReply(input.Message)
	reply.Source = "fallback"
	return reply, nil
}

// buildSystemPrompt appends the owner's pet records to the base prompt so
// the model can personalise its answers.
func (s *AssistantService) buildSystemPrompt(ctx context.Context, user *domain.User) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	pets, err := s.pets.FindByOwner(ctx, user.ID)
	if err != nil || len(pets) == 0 {
		b.WriteString("The owner has no registered pets yet.")
		return b.String()
	}

	b.WriteString("The owner's pets:\n")
	for _, p := range pets {
		b.WriteString("- " + p.Name)
		if p.Breed != "" {
			b.WriteString(", breed: " + p.Breed)
		}
		if p.BirthDate != nil {
			b.WriteString(", born " + p.BirthDate.Format("2006-01-02"))
		}
		if p.WeightKg > 0 {
			b.WriteString(fmt.Sprintf(", weight %.1f kg", p.WeightKg))
		}
		if p.SpecialNotes != "" {
			b.WriteString(", notes: " + p.SpecialNotes)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// reminderKeywords maps message keywords to a suggested reminder message.
var reminderKeywords = map[string]string{
	"vaccin":  "vaccination due",
	"прививк": "vaccination due",
	"checkup": "clinic checkup",
	"осмотр":  "clinic checkup",
	"deworm":  "deworming due",
	"worm":    "deworming due",
	"groom":   "grooming session",
}

// reminderSuggestion proposes a pre-filled reminder one week out when the
// message mentions a schedulable care event.
func (s *AssistantService) reminderSuggestion(userID, message string) *domain.Reminder {
	lower := strings.ToLower(message)
	for kw, note := range reminderKeywords {
		if strings.Contains(lower, kw) {
			return &domain.Reminder{
				UserID:  userID,
				Message: note,
				Date:    time.Now().UTC().AddDate(0, 0, 7),
				Planned: true,
			}
		}
	}
	return nil
}

// fallbackReply answers common topics by keyword when the model is
// unavailable.
func fallbackReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "vaccin"), strings.Contains(lower, "прививк"):
		return "Core vaccinations are usually given yearly; puppies and kittens need a series starting at 6-8 weeks. Please confirm the schedule with your veterinarian."
	case strings.Contains(lower, "food"), strings.Contains(lower, "feed"), strings.Contains(lower, "корм"):
		return "Feed a complete diet appropriate for your pet's species, age and weight, and keep fresh water available. Sudden diet changes should be made gradually over a week."
	case strings.Contains(lower, "vomit"), strings.Contains(lower, "diarrhea"), strings.Contains(lower, "рвот"):
		return "Occasional mild digestive upsets can pass within a day, but repeated vomiting or diarrhea, lethargy or blood are emergencies - contact a veterinarian right away."
	default:
		return "I'm currently offline, so I can only give general guidance. For anything urgent or specific to your pet's health, please book a consultation with a veterinarian."
	}
}
