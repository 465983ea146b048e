package model

import (
	"reflect"
	"testing"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	todos := []Todo{
		{ID: "a", Title: "A", Completed: false},
		{ID: "b", Title: "B", Completed: true},
		{ID: "c", Title: "C", Completed: false},
	}

	tests := []struct {
		name string
		v    Visibility
		want []string
	}{
		{name: "all", v: VisibilityAll, want: []string{"a", "b", "c"}},
		{name: "active", v: VisibilityActive, want: []string{"a", "c"}},
		{name: "completed", v: VisibilityCompleted, want: []string{"b"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Filter(todos, tt.v)
			var ids []string
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Fatalf("Filter(%s): got %v want %v", tt.v, ids, tt.want)
			}
		})
	}

	if len(todos) != 3 || todos[1].ID != "b" {
		t.Fatalf("Filter mutated input: %+v", todos)
	}
}

func TestFilter_ActiveReturnsFreshSlice(t *testing.T) {
	t.Parallel()

	todos := []Todo{{ID: "a", Title: "A"}}
	got := Filter(todos, VisibilityActive)
	got[0].Title = "changed"
	if todos[0].Title != "A" {
		t.Fatalf("expected filtered slice to be independent of input")
	}
}

func TestParseVisibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   Visibility
		wantOK bool
	}{
		{in: "all", want: VisibilityAll, wantOK: true},
		{in: " Active ", want: VisibilityActive, wantOK: true},
		{in: "COMPLETED", want: VisibilityCompleted, wantOK: true},
		{in: "", wantOK: false},
		{in: "done", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := ParseVisibility(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("ParseVisibility(%q): got (%q, %v) want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestVisibilityNext_Cycles(t *testing.T) {
	t.Parallel()

	v := VisibilityAll
	seen := []Visibility{v}
	for i := 0; i < 3; i++ {
		v = v.Next()
		seen = append(seen, v)
	}
	want := []Visibility{VisibilityAll, VisibilityActive, VisibilityCompleted, VisibilityAll}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("Next cycle: got %v want %v", seen, want)
	}
	if got := Visibility("bogus").Next(); got != VisibilityAll {
		t.Fatalf("expected unknown visibility to reset to all; got %q", got)
	}
}

func TestCountsAndPluralize(t *testing.T) {
	t.Parallel()

	todos := []Todo{{ID: "a"}, {ID: "b", Completed: true}}
	if got := CountActive(todos); got != 1 {
		t.Fatalf("CountActive: got %d", got)
	}
	if got := CountCompleted(todos); got != 1 {
		t.Fatalf("CountCompleted: got %d", got)
	}
	if got := CountActive(nil); got != 0 {
		t.Fatalf("CountActive(nil): got %d", got)
	}
	if Pluralize(1) != "item" || Pluralize(0) != "items" || Pluralize(2) != "items" {
		t.Fatalf("unexpected Pluralize output")
	}
}
