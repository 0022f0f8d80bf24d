package progress

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/survey"
)

// DefaultMaxSessions caps how many sessions a MemoryStore holds; the least
// recently used one is dropped past it.
const DefaultMaxSessions = 10000

// MemoryStore keeps sessions in process. Values are stored encoded so
// callers never share a *survey.State with the store.
type MemoryStore struct {
	data *expirable.LRU[string, []byte]
	log  *logger.Logger
}

func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return NewBoundedMemoryStore(DefaultMaxSessions, DefaultTTL, log)
}

// NewBoundedMemoryStore holds at most size sessions, each for at most ttl
// since its last save.
func NewBoundedMemoryStore(size int, ttl time.Duration, log *logger.Logger) *MemoryStore {
	if log == nil {
		log = logger.Discard()
	}
	if size <= 0 {
		size = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		data: expirable.NewLRU[string, []byte](size, nil, ttl),
		log:  log.Component("progress"),
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*survey.State, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	raw, ok := m.data.Get(id)
	if !ok {
		return nil, nil
	}
	return decode(m.log, id, raw), nil
}

func (m *MemoryStore) Save(_ context.Context, s *survey.State) error {
	raw, err := encode(s)
	if err != nil {
		return err
	}
	m.data.Add(s.ID, raw)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	m.data.Remove(id)
	return nil
}

// Len reports how many sessions are held.
func (m *MemoryStore) Len() int {
	return m.data.Len()
}
