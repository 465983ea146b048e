package tui

import (
	"bytes"
	"strings"
	"testing"

	"todomvc-cli/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestNewList_AppOwnsQuitAndLetterKeys(t *testing.T) {
	l := newList(nil)

	if l.KeyMap.Quit.Enabled() {
		t.Fatalf("expected list quit binding disabled; got %v", l.KeyMap.Quit.Keys())
	}
	for _, k := range append(l.KeyMap.NextPage.Keys(), l.KeyMap.PrevPage.Keys()...) {
		if k == "d" || k == "f" || k == "b" || k == "u" {
			t.Fatalf("paging must not claim letter %q", k)
		}
	}
	has := func(keys []string, want string) bool {
		for _, k := range keys {
			if k == want {
				return true
			}
		}
		return false
	}
	if !has(l.KeyMap.CursorDown.Keys(), "ctrl+n") || !has(l.KeyMap.CursorDown.Keys(), "down") {
		t.Fatalf("expected down and ctrl+n; got %v", l.KeyMap.CursorDown.Keys())
	}
}

func TestTodoDelegate_RendersFixedWidthRows(t *testing.T) {
	setGlyphs(glyphSetASCII)
	defer setGlyphs(glyphSetUnicode)

	items := todoItems([]model.Todo{
		{ID: "a", Title: "buy milk", Completed: true},
		{ID: "b", Title: strings.Repeat("long ", 30)},
	})
	l := newList(items)
	l.SetSize(40, 5)

	d := newTodoDelegate()
	for i, it := range items {
		var buf bytes.Buffer
		d.Render(&buf, l, i, it)
		if w := xansi.StringWidth(buf.String()); w != 40 {
			t.Fatalf("row %d: expected width 40; got %d (%q)", i, w, buf.String())
		}
	}

	var buf bytes.Buffer
	d.Render(&buf, l, 0, items[0])
	if !strings.Contains(xansi.Strip(buf.String()), "[x] buy milk") {
		t.Fatalf("expected checkbox and title; got %q", xansi.Strip(buf.String()))
	}
}

func TestRenderInputLine_NeverExceedsWidth(t *testing.T) {
	line := renderInputLine(20, ">", strings.Repeat("x", 50)+"\nmore")
	if w := xansi.StringWidth(line); w > 20 {
		t.Fatalf("expected width <= 20; got %d", w)
	}
	if strings.Contains(line, "\n") {
		t.Fatalf("input line must be a single line")
	}
}
