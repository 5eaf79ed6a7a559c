// Package diag collects the diagnostics a pipeline run produces so the
// caller can render them after the fact.
package diag

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Level is the severity of an entry.
type Level string

const (
	LevelInfo Level = "info"
	LevelWarn Level = "warn"
)

// Stage names the pipeline step that produced an entry.
type Stage string

const (
	StageRegion    Stage = "region"
	StageLoad      Stage = "load"
	StageNormalize Stage = "normalize"
	StageSummary   Stage = "summary"
	StageExport    Stage = "export"
)

// Entry is one diagnostic. Fields are alternating key/value pairs.
type Entry struct {
	Level   Level  `json:"level"`
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	Fields  []any  `json:"fields,omitempty"`
}

// String formats the entry as "stage: message k=v ...".
func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Stage, e.Message)
	for i := 0; i+1 < len(e.Fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", e.Fields[i], e.Fields[i+1])
	}
	return b.String()
}

// Log is an append-only list of entries.
type Log struct {
	entries []Entry
}

// Info appends an info entry.
func (l *Log) Info(stage Stage, msg string, fields ...any) {
	l.add(LevelInfo, stage, msg, fields)
}

// Warn appends a warning entry.
func (l *Log) Warn(stage Stage, msg string, fields ...any) {
	l.add(LevelWarn, stage, msg, fields)
}

func (l *Log) add(level Level, stage Stage, msg string, fields []any) {
	if len(fields)%2 != 0 {
		fields = append(fields, "(missing)")
	}
	l.entries = append(l.entries, Entry{Level: level, Stage: stage, Message: msg, Fields: fields})
}

// Entries returns a copy of the entries in order.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Filter returns the entries produced by stage.
func (l *Log) Filter(stage Stage) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Stage == stage {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns the warn entries.
func (l *Log) Warnings() []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Level == LevelWarn {
			out = append(out, e)
		}
	}
	return out
}

// Render writes every entry to logger, tagged with its stage.
func (l *Log) Render(logger *log.Logger) {
	for _, e := range l.entries {
		kv := append([]any{"stage", string(e.Stage)}, e.Fields...)
		switch e.Level {
		case LevelWarn:
			logger.Warn(e.Message, kv...)
		default:
			logger.Info(e.Message, kv...)
		}
	}
}
