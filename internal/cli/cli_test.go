package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todomvc-cli/internal/store"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// setupDir points config and data at a fresh temp dir and returns it.
func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TODOMVC_CONFIG_DIR", dir)
	for _, k := range []string{"TODOMVC_CONFIG", "TODOMVC_DIR", "TODOMVC_BACKEND", "TODOMVC_KEY", "TODOMVC_FORMAT", "TODOMVC_LOG_LEVEL", "TODOMVC_ON_CORRUPT"} {
		t.Setenv(k, "")
	}
	return dir
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	out, errOut, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("%v: %v\nstderr=%s", args, err, string(errOut))
	}
	var env map[string]any
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("%v: decode json: %v\nstdout=%s", args, err, string(out))
	}
	return env
}

func dataList(t *testing.T, env map[string]any) []map[string]any {
	t.Helper()
	raw, ok := env["data"].([]any)
	if !ok {
		t.Fatalf("expected data array; got %#v", env["data"])
	}
	out := make([]map[string]any, 0, len(raw))
	for _, it := range raw {
		out = append(out, it.(map[string]any))
	}
	return out
}

func TestCLI_AddListToggleRemove(t *testing.T) {
	setupDir(t)

	env := mustRun(t, "add", "buy", "milk")
	milk, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object; got %#v", env["data"])
	}
	milkID, _ := milk["id"].(string)
	if milkID == "" || milk["title"] != "buy milk" || milk["completed"] != false {
		t.Fatalf("unexpected todo: %#v", milk)
	}
	walk := mustRun(t, "add", "  walk dog  ")["data"].(map[string]any)
	walkID := walk["id"].(string)
	if walk["title"] != "walk dog" {
		t.Fatalf("expected trimmed title; got %#v", walk["title"])
	}

	env = mustRun(t, "toggle", milkID)
	if env["data"].(map[string]any)["completed"] != true {
		t.Fatalf("expected completed after toggle; got %#v", env["data"])
	}

	all := dataList(t, mustRun(t, "list"))
	if len(all) != 2 || all[0]["id"] != milkID || all[1]["id"] != walkID {
		t.Fatalf("expected insertion order; got %#v", all)
	}

	env = mustRun(t, "list", "--filter", "active")
	active := dataList(t, env)
	if len(active) != 1 || active[0]["id"] != walkID {
		t.Fatalf("unexpected active list: %#v", active)
	}
	meta := env["meta"].(map[string]any)
	if meta["visibility"] != "active" || meta["activeCount"] != float64(1) || meta["itemsLeft"] != "1 item left" {
		t.Fatalf("unexpected meta: %#v", meta)
	}

	completed := dataList(t, mustRun(t, "list", "--filter", "COMPLETED"))
	if len(completed) != 1 || completed[0]["id"] != milkID {
		t.Fatalf("unexpected completed list: %#v", completed)
	}

	mustRun(t, "rm", milkID)
	all = dataList(t, mustRun(t, "list"))
	if len(all) != 1 || all[0]["id"] != walkID {
		t.Fatalf("expected only walk left; got %#v", all)
	}
}

func TestCLI_AddEmptyTextIsNoop(t *testing.T) {
	setupDir(t)

	env := mustRun(t, "add", "   ")
	if env["data"] != nil {
		t.Fatalf("expected null data; got %#v", env["data"])
	}
	if got := dataList(t, mustRun(t, "list")); len(got) != 0 {
		t.Fatalf("expected empty list; got %#v", got)
	}
}

func TestCLI_UnknownIDsAreErrors(t *testing.T) {
	setupDir(t)

	for _, args := range [][]string{
		{"toggle", "nope"},
		{"rm", "nope"},
		{"edit", "nope", "--title", "x"},
	} {
		_, errOut, err := runCLI(t, args)
		if err == nil {
			t.Fatalf("%v: expected error", args)
		}
		var nf notFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("%v: expected notFoundError; got %T %v", args, err, err)
		}
		if !strings.Contains(string(errOut), "todo not found: nope") {
			t.Fatalf("%v: expected message on stderr; got %q", args, string(errOut))
		}
	}
}

func TestCLI_EditRetitlesAndEmptyDeletes(t *testing.T) {
	setupDir(t)

	id := mustRun(t, "add", "buy milk")["data"].(map[string]any)["id"].(string)

	if _, _, err := runCLI(t, []string{"edit", id}); err == nil {
		t.Fatalf("expected error without --title")
	}

	env := mustRun(t, "edit", id, "--title", "  buy oat milk ")
	if env["data"].(map[string]any)["title"] != "buy oat milk" {
		t.Fatalf("expected trimmed new title; got %#v", env["data"])
	}

	env = mustRun(t, "edit", id, "--title", "   ")
	if env["data"] != nil || env["meta"].(map[string]any)["deleted"] != true {
		t.Fatalf("expected deletion; got %#v", env)
	}
	if got := dataList(t, mustRun(t, "list")); len(got) != 0 {
		t.Fatalf("expected empty list; got %#v", got)
	}
}

func TestCLI_CompleteAllClearCompletedStatus(t *testing.T) {
	setupDir(t)

	mustRun(t, "add", "a")
	mustRun(t, "add", "b")

	env := mustRun(t, "complete-all")
	if env["meta"].(map[string]any)["allDone"] != true {
		t.Fatalf("expected allDone; got %#v", env["meta"])
	}
	env = mustRun(t, "complete-all", "--undo")
	if env["meta"].(map[string]any)["activeCount"] != float64(2) {
		t.Fatalf("expected 2 active after undo; got %#v", env["meta"])
	}

	first := dataList(t, mustRun(t, "list"))[0]["id"].(string)
	mustRun(t, "toggle", first)

	env = mustRun(t, "clear-completed")
	if env["data"].(map[string]any)["removed"] != float64(1) {
		t.Fatalf("expected 1 removed; got %#v", env["data"])
	}

	status := mustRun(t, "status")["data"].(map[string]any)
	if status["total"] != float64(1) || status["activeCount"] != float64(1) || status["allDone"] != false || status["itemsLeft"] != "1 item left" {
		t.Fatalf("unexpected status: %#v", status)
	}

	out, _, err := runCLI(t, []string{"--format", "text", "status"})
	if err != nil {
		t.Fatalf("status text: %v", err)
	}
	if string(out) != "1 item left\n" {
		t.Fatalf("unexpected text status: %q", string(out))
	}
}

func TestCLI_EmptyListIsAllDone(t *testing.T) {
	setupDir(t)

	status := mustRun(t, "status")["data"].(map[string]any)
	if status["allDone"] != true || status["itemsLeft"] != "0 items left" {
		t.Fatalf("unexpected status for empty list: %#v", status)
	}
}

func TestCLI_InvalidFilter(t *testing.T) {
	setupDir(t)

	_, errOut, err := runCLI(t, []string{"list", "--filter", "done"})
	if err == nil {
		t.Fatalf("expected error for invalid filter")
	}
	if !strings.Contains(string(errOut), "all|active|completed") {
		t.Fatalf("expected choices in error; got %q", string(errOut))
	}
}

func TestCLI_TextAndMarkdownFormats(t *testing.T) {
	setupDir(t)

	mustRun(t, "add", "buy milk")
	id := mustRun(t, "add", "walk dog")["data"].(map[string]any)["id"].(string)
	mustRun(t, "toggle", id)

	out, _, err := runCLI(t, []string{"--format", "text", "list"})
	if err != nil {
		t.Fatalf("list text: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "[ ] ") || !strings.HasPrefix(lines[1], "[x] ") || lines[2] != "1 item left" {
		t.Fatalf("unexpected text list:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"--format", "markdown", "list", "--filter", "completed"})
	if err != nil {
		t.Fatalf("list markdown: %v", err)
	}
	md := string(out)
	if !strings.Contains(md, "# TODOS") || !strings.Contains(md, "- [x] walk dog") || strings.Contains(md, "buy milk") {
		t.Fatalf("unexpected markdown list:\n%s", md)
	}
}

func TestCLI_Export(t *testing.T) {
	dir := setupDir(t)

	mustRun(t, "add", "buy milk")

	out, _, err := runCLI(t, []string{"export", "--title", "groceries"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(string(out), "# GROCERIES\n") || !strings.Contains(string(out), "- [ ] buy milk") || !strings.Contains(string(out), "_1 item left_") {
		t.Fatalf("unexpected export:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"export", "--render", "--style", "ascii"})
	if err != nil {
		t.Fatalf("export --render: %v", err)
	}
	if !strings.Contains(string(out), "buy milk") {
		t.Fatalf("expected rendered output to include the todo; got:\n%s", out)
	}

	to := filepath.Join(dir, "out", "todos.md")
	env := mustRun(t, "export", "--to", to)
	written := env["data"].(map[string]any)["written"].([]any)
	if len(written) != 1 || written[0] != to {
		t.Fatalf("unexpected written: %#v", written)
	}
	if _, _, err := runCLI(t, []string{"export", "--to", to}); err == nil {
		t.Fatalf("expected error when file exists")
	}
	mustRun(t, "export", "--to", to, "--overwrite")
}

func TestCLI_BackendFromConfigFileFlagsWin(t *testing.T) {
	dir := setupDir(t)

	if err := store.SaveConfig(filepath.Join(dir, "config.toml"), store.Config{
		Backend:   "sqlite",
		Key:       "groceries",
		Format:    "json",
		LogLevel:  "warn",
		OnCorrupt: "fail",
	}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	mustRun(t, "add", "eggs")
	if _, err := os.Stat(filepath.Join(dir, "todomvc.sqlite")); err != nil {
		t.Fatalf("expected sqlite database from config: %v", err)
	}
	if got := dataList(t, mustRun(t, "list")); len(got) != 1 {
		t.Fatalf("expected list from sqlite; got %#v", got)
	}

	// An explicit flag overrides the file.
	if got := dataList(t, mustRun(t, "--backend", "file", "list")); len(got) != 0 {
		t.Fatalf("expected empty file backend; got %#v", got)
	}

	env := mustRun(t, "config", "show")
	cfg := env["data"].(map[string]any)
	if cfg["backend"] != "sqlite" || cfg["key"] != "groceries" {
		t.Fatalf("unexpected config: %#v", cfg)
	}

	t.Setenv("TODOMVC_KEY", "hardware")
	if got := mustRun(t, "config", "show")["data"].(map[string]any)["key"]; got != "hardware" {
		t.Fatalf("expected env to override file; got %#v", got)
	}
}

func TestCLI_InvalidConfigRejected(t *testing.T) {
	setupDir(t)

	if _, _, err := runCLI(t, []string{"--backend", "redis", "list"}); !errors.Is(err, store.ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend; got %v", err)
	}
	if _, _, err := runCLI(t, []string{"--format", "yaml", "list"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, _, err := runCLI(t, []string{"--on-corrupt", "ignore", "list"}); err == nil {
		t.Fatalf("expected error for unknown on-corrupt policy")
	}
}

func TestCLI_ConfigInit(t *testing.T) {
	dir := setupDir(t)

	mustRun(t, "--backend", "sqlite", "config", "init")
	cfg, err := store.LoadConfig(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend != "sqlite" {
		t.Fatalf("expected backend persisted; got %+v", cfg)
	}
	if _, _, err := runCLI(t, []string{"config", "init"}); err == nil {
		t.Fatalf("expected error when config exists")
	}
	mustRun(t, "config", "init", "--force")
}

func TestCLI_CorruptDataDoctorAndReset(t *testing.T) {
	dir := setupDir(t)

	raw := `[{"id":"a","title":"A","completed":"yes"}]`
	if err := os.WriteFile(filepath.Join(dir, "todoMVC-app-Vue.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, errOut, err := runCLI(t, []string{"list"})
	if !errors.Is(err, store.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt; got %v", err)
	}
	if ExitCode(err) != 3 {
		t.Fatalf("expected exit code 3; got %d", ExitCode(err))
	}
	if !strings.Contains(string(errOut), "[0].completed") {
		t.Fatalf("expected problem location on stderr; got %q", string(errOut))
	}

	env := mustRun(t, "doctor")
	if env["meta"].(map[string]any)["hasErrors"] != true {
		t.Fatalf("expected doctor errors; got %#v", env)
	}
	if _, _, err := runCLI(t, []string{"doctor", "--fail"}); !errors.Is(err, store.ErrDoctorIssuesFound) {
		t.Fatalf("expected ErrDoctorIssuesFound; got %v", err)
	}

	if got := dataList(t, mustRun(t, "--on-corrupt", "reset", "list")); len(got) != 0 {
		t.Fatalf("expected empty list after reset; got %#v", got)
	}
	b, err := os.ReadFile(filepath.Join(dir, "todoMVC-app-Vue.corrupt.json"))
	if err != nil || string(b) != raw {
		t.Fatalf("expected raw value backed up; got %q err=%v", string(b), err)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("boom"), 1},
		{store.ErrCorrupt, 3},
		{store.ErrDoctorIssuesFound, 2},
	}
	for _, tc := range tests {
		if got := ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v): got %d want %d", tc.err, got, tc.want)
		}
	}
}

func TestCLI_Docs(t *testing.T) {
	setupDir(t)

	topics := mustRun(t, "docs")["data"].(map[string]any)["topics"].([]any)
	if len(topics) != 3 {
		t.Fatalf("unexpected topics: %#v", topics)
	}

	out, _, err := runCLI(t, []string{"docs", "storage", "--raw"})
	if err != nil {
		t.Fatalf("docs --raw: %v", err)
	}
	if !strings.HasPrefix(string(out), "# Storage") {
		t.Fatalf("unexpected raw docs:\n%s", out)
	}

	if _, _, err := runCLI(t, []string{"docs", "nope"}); err == nil {
		t.Fatalf("expected error for unknown topic")
	}
}
