package postgres

import (
	"context"

	"github.com/JillPatel28/medical-translator-app/internal/models"
	"github.com/JillPatel28/medical-translator-app/internal/utils"
	"gorm.io/gorm"
)

type AudioMessageRepository interface {
	Insert(ctx context.Context, a *models.AudioMessage) error
	// ListAll returns every audio message, newest first.
	ListAll(ctx context.Context) ([]models.AudioMessage, error)
	// SetTranscript attaches the transcript to an existing row. This is
	// the only mutation the application ever performs.
	SetTranscript(ctx context.Context, id, transcript string) error
}

type audioMessageRepo struct {
	db *gorm.DB
}

func NewAudioMessageRepo(db *gorm.DB) AudioMessageRepository {
	return &audioMessageRepo{db: db}
}

func (r *audioMessageRepo) Insert(ctx context.Context, a *models.AudioMessage) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *audioMessageRepo) ListAll(ctx context.Context) ([]models.AudioMessage, error) {
	var rows []models.AudioMessage
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&rows).Error
	return rows, err
}

func (r *audioMessageRepo) SetTranscript(ctx context.Context, id, transcript string) error {
	res := r.db.WithContext(ctx).
		Model(&models.AudioMessage{}).
		Where("id = ?", id).
		Update("transcript", transcript)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
