package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// KV is a durable string key-value store: the "local storage" a Slot lives in.
type KV interface {
	// Get returns ok=false when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

const sqliteFileName = "todomvc.sqlite"

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendFile, nil
	case BackendFile, BackendSQLite, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q (want file|sqlite|memory)", ErrUnknownBackend, s)
	}
}

// OpenKV opens the backend rooted at dir. Callers must Close the result.
func OpenKV(ctx context.Context, backend Backend, dir string) (KV, error) {
	switch backend {
	case BackendFile, "":
		if strings.TrimSpace(dir) == "" {
			return nil, errors.New("file backend: empty dir")
		}
		return &FileKV{Dir: dir}, nil
	case BackendSQLite:
		if strings.TrimSpace(dir) == "" {
			return nil, errors.New("sqlite backend: empty dir")
		}
		return OpenSQLiteKV(ctx, filepath.Join(dir, sqliteFileName))
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
