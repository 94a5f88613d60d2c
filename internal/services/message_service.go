package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JillPatel28/medical-translator-app/internal/models"
	"github.com/JillPatel28/medical-translator-app/internal/providers/ai"
	pgrepo "github.com/JillPatel28/medical-translator-app/internal/repositories/postgres"
	"github.com/JillPatel28/medical-translator-app/internal/utils"
)

type MessageService interface {
	// Translate persists the utterance, then asks the AI provider for the
	// cross-role rendering. The message is durable even if the downstream
	// call fails.
	Translate(ctx context.Context, role, text string) (*models.Message, string, error)
	List(ctx context.Context) ([]models.Message, error)
	Search(ctx context.Context, keyword string) ([]models.Message, error)
	// Summarize fetches the selected messages, preserving the caller's
	// order and skipping unknown ids, and asks the provider for a summary.
	Summarize(ctx context.Context, messageIDs []string) (string, error)
}

type messageService struct {
	messages pgrepo.MessageRepository
	ai       ai.Provider
}

func NewMessageService(messages pgrepo.MessageRepository, provider ai.Provider) MessageService {
	return &messageService{messages: messages, ai: provider}
}

func (s *messageService) Translate(ctx context.Context, role, text string) (*models.Message, string, error) {
	const op = "MessageService.Translate"

	role, ok := models.NormalizeRole(role)
	if !ok {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, `role must be "doctor" or "patient"`, nil)
	}
	if text == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "Text is required", nil)
	}

	row := &models.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	if err := s.messages.Insert(ctx, row); err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to save message", err)
	}

	translation, err := s.ai.Translate(ctx, role, text)
	if err != nil {
		return nil, "", utils.E(utils.CodeUnavailable, op, "translation failed", err)
	}
	return row, translation, nil
}

func (s *messageService) List(ctx context.Context) ([]models.Message, error) {
	const op = "MessageService.List"

	rows, err := s.messages.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list messages", err)
	}
	return rows, nil
}

func (s *messageService) Search(ctx context.Context, keyword string) ([]models.Message, error) {
	const op = "MessageService.Search"

	rows, err := s.messages.Search(ctx, keyword)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to search messages", err)
	}
	return rows, nil
}

func (s *messageService) Summarize(ctx context.Context, messageIDs []string) (string, error) {
	const op = "MessageService.Summarize"

	if len(messageIDs) == 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "No messages selected", nil)
	}

	rows, err := s.messages.ByIDs(ctx, messageIDs)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to load messages", err)
	}

	byID := make(map[string]models.Message, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}

	lines := make([]ai.TranscriptLine, 0, len(messageIDs))
	for _, id := range messageIDs {
		if m, ok := byID[id]; ok {
			lines = append(lines, ai.TranscriptLine{Role: m.Role, Text: m.Text})
		}
	}

	summary, err := s.ai.Summarize(ctx, lines)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "summarization failed", err)
	}
	return summary, nil
}
