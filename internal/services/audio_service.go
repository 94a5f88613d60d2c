package services

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JillPatel28/medical-translator-app/internal/models"
	"github.com/JillPatel28/medical-translator-app/internal/providers/ai"
	pgrepo "github.com/JillPatel28/medical-translator-app/internal/repositories/postgres"
	"github.com/JillPatel28/medical-translator-app/internal/storage"
	"github.com/JillPatel28/medical-translator-app/internal/utils"
)

type AudioService interface {
	// Process runs the audio chain: store the bytes, insert the
	// AudioMessage, transcribe, attach the transcript, then insert the
	// companion text Message, which is returned. A failure partway leaves
	// whatever was already written in place; there is no compensation.
	Process(ctx context.Context, role, filename, contentType string, audio []byte) (*models.Message, error)
	List(ctx context.Context) ([]models.AudioMessage, error)
}

type audioService struct {
	audio    pgrepo.AudioMessageRepository
	messages pgrepo.MessageRepository
	ai       ai.Provider
	uploader storage.Uploader
}

func NewAudioService(audio pgrepo.AudioMessageRepository, messages pgrepo.MessageRepository, provider ai.Provider, uploader storage.Uploader) AudioService {
	return &audioService{audio: audio, messages: messages, ai: provider, uploader: uploader}
}

func (s *audioService) Process(ctx context.Context, role, filename, contentType string, audio []byte) (*models.Message, error) {
	const op = "AudioService.Process"

	role, ok := models.NormalizeRole(role)
	if !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, `role must be "doctor" or "patient"`, nil)
	}
	if len(audio) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Audio file is required", nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	objectName := "audio_messages/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	storedPath, err := s.uploader.Upload(ctx, objectName, contentType, bytes.NewReader(audio))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store audio", err)
	}

	row := &models.AudioMessage{
		ID:        uuid.NewString(),
		Role:      role,
		AudioPath: storedPath,
		Timestamp: time.Now().UTC(),
	}
	if err := s.audio.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save audio message", err)
	}

	transcript, err := s.ai.Transcribe(ctx, filename, audio)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "transcription failed", err)
	}
	if err := s.audio.SetTranscript(ctx, row.ID, transcript); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to attach transcript", err)
	}

	msg := &models.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      transcript,
		Timestamp: time.Now().UTC(),
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save transcript message", err)
	}
	return msg, nil
}

func (s *audioService) List(ctx context.Context) ([]models.AudioMessage, error) {
	const op = "AudioService.List"

	rows, err := s.audio.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list audio messages", err)
	}
	return rows, nil
}
