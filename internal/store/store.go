package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"todomvc-cli/internal/log"
	"todomvc-cli/internal/model"
)

// DefaultKey is the slot name the list is stored under.
const DefaultKey = "todoMVC-app-Vue"

// ErrCorrupt is returned by Slot.Load when the stored value is not a valid todo list.
var ErrCorrupt = errors.New("corrupt todo data")

// CorruptPolicy decides what Load does with a malformed stored value.
type CorruptPolicy string

const (
	// CorruptFail makes Load return an error wrapping ErrCorrupt.
	CorruptFail CorruptPolicy = "fail"
	// CorruptReset backs the raw value up under "<key>.corrupt" and loads an empty list.
	CorruptReset CorruptPolicy = "reset"
)

func ParseCorruptPolicy(s string) (CorruptPolicy, bool) {
	switch CorruptPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CorruptFail:
		return CorruptFail, true
	case CorruptReset:
		return CorruptReset, true
	default:
		return "", false
	}
}

// Slot persists the whole todo list as one JSON array under a single key.
type Slot struct {
	KV        KV
	Key       string
	OnCorrupt CorruptPolicy
}

func (s Slot) key() string {
	if k := strings.TrimSpace(s.Key); k != "" {
		return k
	}
	return DefaultKey
}

// Save overwrites the slot with todos. An empty or nil list is stored as [].
func (s Slot) Save(ctx context.Context, todos []model.Todo) error {
	if s.KV == nil {
		return errors.New("slot: nil kv")
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	b, err := json.Marshal(todos)
	if err != nil {
		return err
	}
	if err := s.KV.Set(ctx, s.key(), string(b)); err != nil {
		return fmt.Errorf("write %s: %w", s.key(), err)
	}
	return nil
}

// Load reads the slot. A missing or blank value is an empty list, not an error.
func (s Slot) Load(ctx context.Context) ([]model.Todo, error) {
	if s.KV == nil {
		return nil, errors.New("slot: nil kv")
	}
	raw, ok, err := s.KV.Get(ctx, s.key())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key(), err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Todo{}, nil
	}

	todos, problems := decodeTodos([]byte(raw))
	if len(problems) == 0 {
		return todos, nil
	}

	if s.OnCorrupt != CorruptReset {
		return nil, fmt.Errorf("%w in %s: %s", ErrCorrupt, s.key(), strings.Join(problems, "; "))
	}

	backup := s.key() + ".corrupt"
	if err := s.KV.Set(ctx, backup, raw); err != nil {
		return nil, fmt.Errorf("back up corrupt %s: %w", s.key(), err)
	}
	log.Warn().
		Str("key", s.key()).
		Str("backup", backup).
		Strs("problems", problems).
		Msg("stored todos are corrupt; starting with an empty list")
	return []model.Todo{}, nil
}

// decodeTodos validates raw against the stored-list schema and decodes it.
func decodeTodos(raw []byte) ([]model.Todo, []string) {
	if problems := validateTodosJSON(raw); len(problems) > 0 {
		return nil, problems
	}
	var todos []model.Todo
	if err := json.Unmarshal(raw, &todos); err != nil {
		return nil, []string{err.Error()}
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}
