package progress

import (
	"fmt"

	"love-vs-grades-go/internal/logger"
)

// Open builds the store named by backend: memory, file or redis. The
// returned close func is never nil.
func Open(backend, dir, redisAddr string, log *logger.Logger) (Store, func() error, error) {
	noop := func() error { return nil }
	switch backend {
	case "", "memory":
		return NewMemoryStore(log), noop, nil
	case "file":
		s, err := NewFileStore(dir, log)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case "redis":
		s, err := NewRedisStore(redisAddr, DefaultTTL, log)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown progress backend %q", backend)
}
