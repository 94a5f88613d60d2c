package ai

import (
	"bytes"
	"context"
	"errors"
	"strings"

	openaiapi "github.com/sashabaranov/go-openai"

	"github.com/JillPatel28/medical-translator-app/internal/models"
)

const (
	defaultChatModel       = openaiapi.GPT3Dot5Turbo
	defaultTranscribeModel = openaiapi.Whisper1

	translateMaxTokens = 200
	summarizeMaxTokens = 300

	translateSystemPrompt = "You are a medical translation assistant."
	summarizeSystemPrompt = "You are a medical conversation summarizer."
)

// OpenAIConfig holds everything the client needs; the credential is read
// once at startup and injected here, never from the environment at call
// time.
type OpenAIConfig struct {
	APIKey          string
	ChatModel       string // defaults to gpt-3.5-turbo
	TranscribeModel string // defaults to whisper-1
}

type OpenAI struct {
	api             *openaiapi.Client
	chatModel       string
	transcribeModel string
}

func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = defaultChatModel
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = defaultTranscribeModel
	}
	return &OpenAI{
		api:             openaiapi.NewClient(cfg.APIKey),
		chatModel:       cfg.ChatModel,
		transcribeModel: cfg.TranscribeModel,
	}, nil
}

func (o *OpenAI) Translate(ctx context.Context, role, text string) (string, error) {
	return o.complete(ctx, translateSystemPrompt, translationPrompt(role, text), translateMaxTokens)
}

func (o *OpenAI) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	resp, err := o.api.CreateTranscription(ctx, openaiapi.AudioRequest{
		Model:    o.transcribeModel,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (o *OpenAI) Summarize(ctx context.Context, lines []TranscriptLine) (string, error) {
	prompt := "Summarize this doctor-patient conversation:\n" + conversationBlock(lines)
	return o.complete(ctx, summarizeSystemPrompt, prompt, summarizeMaxTokens)
}

func (o *OpenAI) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := o.api.CreateChatCompletion(ctx, openaiapi.ChatCompletionRequest{
		Model:     o.chatModel,
		MaxTokens: maxTokens,
		Messages: []openaiapi.ChatCompletionMessage{
			{Role: openaiapi.ChatMessageRoleSystem, Content: system},
			{Role: openaiapi.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func translationPrompt(role, text string) string {
	if role == models.RoleDoctor {
		return "Translate this medical terminology to patient-friendly language: " + text
	}
	return "Help the doctor understand this patient statement in medical terms: " + text
}

func conversationBlock(lines []TranscriptLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Role)
		b.WriteString(": ")
		b.WriteString(l.Text)
	}
	return b.String()
}
