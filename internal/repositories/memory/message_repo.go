// Package memory holds mutex-guarded in-memory implementations of the
// repository interfaces. They back the server when no POSTGRES_URI is
// configured and double as the store in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/JillPatel28/medical-translator-app/internal/models"
)

type MessageRepo struct {
	mu   sync.Mutex
	rows []models.Message
}

func NewMessageRepo() *MessageRepo {
	return &MessageRepo{}
}

func (r *MessageRepo) Insert(_ context.Context, m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *m)
	return nil
}

func (r *MessageRepo) ListAll(_ context.Context) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return newestFirst(r.rows), nil
}

func (r *MessageRepo) Search(_ context.Context, keyword string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kw := strings.ToLower(keyword)
	matched := make([]models.Message, 0, len(r.rows))
	for _, m := range r.rows {
		if strings.Contains(strings.ToLower(m.Text), kw) {
			matched = append(matched, m)
		}
	}
	return newestFirst(matched), nil
}

func (r *MessageRepo) ByIDs(_ context.Context, ids []string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var rows []models.Message
	for _, m := range r.rows {
		if _, ok := want[m.ID]; ok {
			rows = append(rows, m)
		}
	}
	return rows, nil
}

// newestFirst copies rows in reverse insertion order, then stable-sorts by
// timestamp descending so ties keep reverse insertion order.
func newestFirst(rows []models.Message) []models.Message {
	out := make([]models.Message, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
