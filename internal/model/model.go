package model

import "strings"

type Todo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Visibility selects which subset of the list a view shows.
type Visibility string

const (
	VisibilityAll       Visibility = "all"
	VisibilityActive    Visibility = "active"
	VisibilityCompleted Visibility = "completed"
)

// Visibilities returns the filters in display order.
func Visibilities() []Visibility {
	return []Visibility{VisibilityAll, VisibilityActive, VisibilityCompleted}
}

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityAll, VisibilityActive, VisibilityCompleted:
		return true
	default:
		return false
	}
}

// Next returns the filter after v, wrapping around. Unknown values map to all.
func (v Visibility) Next() Visibility {
	vs := Visibilities()
	for i, x := range vs {
		if x == v {
			return vs[(i+1)%len(vs)]
		}
	}
	return VisibilityAll
}

func ParseVisibility(s string) (Visibility, bool) {
	v := Visibility(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", false
	}
	return v, true
}

// Filter returns the todos visible under v. The input slice is never modified;
// all returns it unchanged.
func Filter(todos []Todo, v Visibility) []Todo {
	switch v {
	case VisibilityActive:
		return keep(todos, func(t Todo) bool { return !t.Completed })
	case VisibilityCompleted:
		return keep(todos, func(t Todo) bool { return t.Completed })
	default:
		return todos
	}
}

func keep(todos []Todo, fn func(Todo) bool) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if fn(t) {
			out = append(out, t)
		}
	}
	return out
}

func CountActive(todos []Todo) int {
	n := 0
	for _, t := range todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

func CountCompleted(todos []Todo) int {
	return len(todos) - CountActive(todos)
}

// Pluralize returns the noun used by "N items left" style footers.
func Pluralize(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}
