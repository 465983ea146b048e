package store

import (
	"context"
	"errors"
	"strings"
)

// ErrDoctorIssuesFound is returned by `doctor --fail` when the report has errors.
var ErrDoctorIssuesFound = errors.New("doctor found errors")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Key     string           `json:"key,omitempty"`
}

type DoctorReport struct {
	Key     string        `json:"key"`
	Present bool          `json:"present"`
	Count   int           `json:"count"`
	Issues  []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Check inspects the slot without modifying it, regardless of OnCorrupt.
func (s Slot) Check(ctx context.Context) DoctorReport {
	rep := DoctorReport{Key: s.key(), Issues: []DoctorIssue{}}
	if s.KV == nil {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "no_backend", Message: "no storage backend configured"})
		return rep
	}

	raw, ok, err := s.KV.Get(ctx, rep.Key)
	if err != nil {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "read_failed", Message: err.Error(), Key: rep.Key})
		return rep
	}
	rep.Present = ok
	if !ok || strings.TrimSpace(raw) == "" {
		return rep
	}

	todos, problems := decodeTodos([]byte(raw))
	for _, p := range problems {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "invalid_data", Message: p, Key: rep.Key})
	}
	if len(problems) > 0 {
		return rep
	}
	rep.Count = len(todos)

	seen := map[string]bool{}
	for _, t := range todos {
		if seen[t.ID] {
			rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "duplicate_id", Message: "duplicate todo id: " + t.ID, Key: rep.Key})
		}
		seen[t.ID] = true
		if strings.TrimSpace(t.Title) == "" {
			rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "empty_title", Message: "todo has an empty title (dropped on next edit commit): " + t.ID, Key: rep.Key})
		}
	}

	if backup, ok, err := s.KV.Get(ctx, rep.Key+".corrupt"); err == nil && ok && strings.TrimSpace(backup) != "" {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "corrupt_backup", Message: "a corrupt value was backed up earlier", Key: rep.Key + ".corrupt"})
	}
	return rep
}
