package progress

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/survey"
)

// FileStore writes one JSON file per session under Dir. Files not saved
// within TTL are treated as abandoned and removed on load.
type FileStore struct {
	Dir string
	TTL time.Duration
	log *logger.Logger
}

func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if log == nil {
		log = logger.Discard()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create progress dir: %w", err)
	}
	return &FileStore{Dir: dir, TTL: DefaultTTL, log: log.Component("progress")}, nil
}

func (f *FileStore) path(id string) string {
	return filepath.Join(f.Dir, KeyPrefix+"_"+id+".json")
}

func (f *FileStore) Load(_ context.Context, id string) (*survey.State, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	path := f.path(id)
	if f.TTL > 0 {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("stat progress: %w", err)
		}
		if time.Since(info.ModTime()) > f.TTL {
			f.log.WithField("session", id).Debug("discarding expired progress")
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("clear expired progress: %w", err)
			}
			return nil, nil
		}
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	return decode(f.log, id, raw), nil
}

// Save writes to a temp file and renames it into place.
func (f *FileStore) Save(_ context.Context, s *survey.State) error {
	raw, err := encode(s)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.Dir, "progress-*.tmp")
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save progress: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(s.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := os.Remove(f.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}
