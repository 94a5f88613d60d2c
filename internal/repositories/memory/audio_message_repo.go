package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/JillPatel28/medical-translator-app/internal/models"
	"github.com/JillPatel28/medical-translator-app/internal/utils"
)

type AudioMessageRepo struct {
	mu   sync.Mutex
	rows []models.AudioMessage
}

func NewAudioMessageRepo() *AudioMessageRepo {
	return &AudioMessageRepo{}
}

func (r *AudioMessageRepo) Insert(_ context.Context, a *models.AudioMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *a)
	return nil
}

func (r *AudioMessageRepo) ListAll(_ context.Context) ([]models.AudioMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.AudioMessage, 0, len(r.rows))
	for i := len(r.rows) - 1; i >= 0; i-- {
		out = append(out, r.rows[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *AudioMessageRepo) SetTranscript(_ context.Context, id, transcript string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Transcript = transcript
			return nil
		}
	}
	return utils.ErrNotFound
}
