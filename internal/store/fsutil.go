package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// FileKV stores each key in its own JSON file under Dir.
type FileKV struct {
	Dir string
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.Dir, keyFileName(key)+".json")
}

// keyFileName keeps keys from escaping Dir.
func keyFileName(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, key)
}

func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

func (f *FileKV) Set(_ context.Context, key, value string) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(f.Dir, keyFileName(key)+".*.tmp", f.path(key), []byte(value), 0o644)
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (f *FileKV) Close() error { return nil }

// atomicWriteFile writes through a unique temp file and renames it into place.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
