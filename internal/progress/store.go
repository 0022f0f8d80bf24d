package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/survey"
)

// KeyPrefix namespaces saved sessions in shared backends.
const KeyPrefix = "love_vs_grades_progress"

// DefaultTTL is how long an abandoned session survives in any backend.
const DefaultTTL = 7 * 24 * time.Hour

var ErrInvalidID = errors.New("invalid session id")

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Store persists in-progress survey sessions. Load returns nil, nil when
// there is nothing usable to resume: no saved state, a corrupt blob, or a
// session that already completed.
type Store interface {
	Load(ctx context.Context, id string) (*survey.State, error)
	Save(ctx context.Context, s *survey.State) error
	Clear(ctx context.Context, id string) error
}

func checkID(id string) error {
	if !validID.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func encode(s *survey.State) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil state")
	}
	if err := checkID(s.ID); err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// decode treats undecodable or finished sessions as absent.
func decode(log *logger.Logger, id string, raw []byte) *survey.State {
	var s survey.State
	if err := json.Unmarshal(raw, &s); err != nil {
		log.WithError(err).WithField("session", id).Warn("discarding corrupt progress")
		return nil
	}
	if s.IsCompleted {
		return nil
	}
	if s.ID == "" {
		s.ID = id
	}
	return &s
}
