// Package todo implements the todo list state machine: the ordered list, the single
// edit buffer, and the visibility filter, with persistence after every mutation.
//
// Operations are forgiving: unknown ids, empty text and invalid filters are no-ops.
// The only errors returned come from the persistence step, and the in-memory
// mutation is kept even when that step fails.
package todo

import (
	"context"
	"fmt"
	"strings"

	"todomvc-cli/internal/log"
	"todomvc-cli/internal/model"

	"github.com/google/uuid"
)

// Persister is the durable mirror of the list.
type Persister interface {
	Load(ctx context.Context) ([]model.Todo, error)
	Save(ctx context.Context, todos []model.Todo) error
}

// Snapshot is the derived state a view renders after each call.
type Snapshot struct {
	Todos          []model.Todo     `json:"todos"`
	Visible        []model.Todo     `json:"visible"`
	Visibility     model.Visibility `json:"visibility"`
	ActiveCount    int              `json:"activeCount"`
	CompletedCount int              `json:"completedCount"`
	AllDone        bool             `json:"allDone"`
	Editing        *model.Todo      `json:"editing,omitempty"`
}

type Option func(*Store)

// WithIDFunc overrides id generation (default: random UUIDv4 strings).
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Store is not safe for concurrent use.
type Store struct {
	persister Persister
	newID     func() string

	todos      []model.Todo
	visibility model.Visibility
	edit       model.Todo

	listeners    map[int]func(Snapshot)
	nextListener int
}

// Open hydrates a store from p. Load is called exactly once, here.
// A nil persister yields an in-memory store.
func Open(p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persister:  p,
		newID:      uuid.NewString,
		visibility: model.VisibilityAll,
		listeners:  map[int]func(Snapshot){},
	}
	for _, opt := range opts {
		opt(s)
	}
	if p != nil {
		todos, err := p.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load todos: %w", err)
		}
		s.todos = append([]model.Todo(nil), todos...)
	}
	if s.todos == nil {
		s.todos = []model.Todo{}
	}
	log.Debug().Int("count", len(s.todos)).Msg("todos hydrated")
	return s, nil
}

// Subscribe registers fn to receive a snapshot after every mutation.
// The returned func removes it.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// Add appends a new todo with the trimmed text. Empty text is a no-op (ok=false).
func (s *Store) Add(text string) (model.Todo, bool, error) {
	title := cleanTitle(text)
	if title == "" {
		return model.Todo{}, false, nil
	}
	t := model.Todo{ID: s.nextID(), Title: title, Completed: false}
	s.todos = append(s.todos, t)
	return t, true, s.changed("add", t.ID)
}

// Remove deletes the todo with id. Absent ids are a no-op.
func (s *Store) Remove(id string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.todos = append(s.todos[:i:i], s.todos[i+1:]...)
	return true, s.changed("remove", id)
}

// Toggle flips the completed flag of one todo.
func (s *Store) Toggle(id string) (model.Todo, bool, error) {
	i := s.index(id)
	if i < 0 {
		return model.Todo{}, false, nil
	}
	s.todos[i].Completed = !s.todos[i].Completed
	return s.todos[i], true, s.changed("toggle", id)
}

// SetVisibility sets the current filter. Values outside the enum are ignored.
func (s *Store) SetVisibility(v model.Visibility) bool {
	if !v.Valid() {
		return false
	}
	s.visibility = v
	return true
}

// ClearCompleted keeps only the active todos. It returns how many were removed.
func (s *Store) ClearCompleted() (int, error) {
	kept := model.Filter(s.todos, model.VisibilityActive)
	removed := len(s.todos) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.todos = kept
	return removed, s.changed("clear_completed", "")
}

// SetAllCompleted broadcasts value to every todo.
func (s *Store) SetAllCompleted(value bool) error {
	dirty := false
	for i := range s.todos {
		if s.todos[i].Completed != value {
			s.todos[i].Completed = value
			dirty = true
		}
	}
	if !dirty {
		return nil
	}
	return s.changed("set_all_completed", "")
}

// BeginEdit copies the todo into the edit buffer. The copy is independent of the list.
func (s *Store) BeginEdit(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.edit = s.todos[i]
	return true
}

// SetEditTitle updates the buffer only; the list is untouched until CommitEdit.
func (s *Store) SetEditTitle(title string) bool {
	if s.edit.ID == "" {
		return false
	}
	s.edit.Title = title
	return true
}

// Editing returns the edit buffer, if an edit is active.
func (s *Store) Editing() (model.Todo, bool) {
	return s.edit, s.edit.ID != ""
}

func (s *Store) CancelEdit() {
	s.edit = model.Todo{}
}

// CommitEdit writes the buffer back over the entry with the same id, then drops every
// entry whose trimmed title is empty. The sweep runs even when no edit is active.
func (s *Store) CommitEdit() (bool, error) {
	buf := s.edit
	s.edit = model.Todo{}

	dirty := false
	if buf.ID != "" {
		if i := s.index(buf.ID); i >= 0 {
			buf.Title = cleanTitle(buf.Title)
			if s.todos[i] != buf {
				s.todos[i] = buf
				dirty = true
			}
		}
	}

	kept := make([]model.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if strings.TrimSpace(t.Title) == "" {
			dirty = true
			continue
		}
		kept = append(kept, t)
	}
	s.todos = kept

	if !dirty {
		return false, nil
	}
	return true, s.changed("commit_edit", buf.ID)
}

// Todos returns a copy of the full list in insertion order.
func (s *Store) Todos() []model.Todo {
	return append([]model.Todo{}, s.todos...)
}

func (s *Store) Find(id string) (model.Todo, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return s.todos[i], true
}

func (s *Store) Visibility() model.Visibility { return s.visibility }

func (s *Store) ActiveCount() int { return model.CountActive(s.todos) }

// IsAllDone is vacuously true for an empty list.
func (s *Store) IsAllDone() bool { return s.ActiveCount() == 0 }

// VisibleTodos applies the current filter to a copy of the list.
func (s *Store) VisibleTodos() []model.Todo {
	return model.Filter(s.Todos(), s.visibility)
}

func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Todos:          s.Todos(),
		Visible:        s.VisibleTodos(),
		Visibility:     s.visibility,
		ActiveCount:    s.ActiveCount(),
		CompletedCount: model.CountCompleted(s.todos),
		AllDone:        s.IsAllDone(),
	}
	if buf, ok := s.Editing(); ok {
		snap.Editing = &buf
	}
	return snap
}

// nextID never hands out a blank id; those cannot be addressed or stored.
func (s *Store) nextID() string {
	if id := strings.TrimSpace(s.newID()); id != "" {
		return id
	}
	return uuid.NewString()
}

// cleanTitle trims text and replaces invalid UTF-8, which JSON cannot carry unchanged.
func cleanTitle(text string) string {
	return strings.ToValidUTF8(strings.TrimSpace(text), "\uFFFD")
}

func (s *Store) index(id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

// changed persists the list and then notifies listeners.
func (s *Store) changed(op, id string) error {
	log.Debug().Str("op", op).Str("id", id).Int("count", len(s.todos)).Msg("todos changed")

	var err error
	if s.persister != nil {
		if err = s.persister.Save(context.Background(), s.Todos()); err != nil {
			log.Error().Err(err).Str("op", op).Msg("save todos")
			err = fmt.Errorf("save todos: %w", err)
		}
	}
	if len(s.listeners) > 0 {
		snap := s.Snapshot()
		for _, fn := range s.listeners {
			fn(snap)
		}
	}
	return err
}
