package postgres

import (
	"context"

	"github.com/JillPatel28/medical-translator-app/internal/models"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Insert(ctx context.Context, m *models.Message) error
	// ListAll returns every message, newest first.
	ListAll(ctx context.Context) ([]models.Message, error)
	// Search matches keyword as a case-insensitive substring of text.
	// An empty keyword matches everything.
	Search(ctx context.Context, keyword string) ([]models.Message, error)
	// ByIDs returns the messages whose ids are in the given set, in no
	// particular order; unknown ids are simply absent from the result.
	ByIDs(ctx context.Context, ids []string) ([]models.Message, error)
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Insert(ctx context.Context, m *models.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepo) ListAll(ctx context.Context) ([]models.Message, error) {
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&rows).Error
	return rows, err
}

func (r *messageRepo) Search(ctx context.Context, keyword string) ([]models.Message, error) {
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("text ILIKE ?", "%"+keyword+"%").
		Order("timestamp DESC").
		Find(&rows).Error
	return rows, err
}

func (r *messageRepo) ByIDs(ctx context.Context, ids []string) ([]models.Message, error) {
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error
	return rows, err
}
