package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	reset = "\033[0m"

	red         = 31
	cyan        = 36
	lightGray   = 37
	darkGray    = 90
	lightYellow = 93
)

func colorizer(colorCode int, v string) string {
	return "\033[" + strconv.Itoa(colorCode) + "m" + v + reset
}

// entryPrinter renders JSON slog records as single human-readable lines:
//
//	2026-01-02 15:04:05 INFO: Engine.Build cmd="docker build -t dev ."
type entryPrinter struct {
	w        io.Writer
	colorize bool
	loc      *time.Location
}

func newEntryPrinter(w io.Writer, colorize bool) *entryPrinter {
	return &entryPrinter{w: w, colorize: colorize, loc: time.Local}
}

func (p *entryPrinter) color(code int, v string) string {
	if !p.colorize {
		return v
	}
	return colorizer(code, v)
}

// PrintLine formats one line of the log file. Lines that are not JSON
// objects are passed through unchanged.
func (p *entryPrinter) PrintLine(line string) error {
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		_, err := io.WriteString(p.w, line+"\n")
		return err
	}

	var out strings.Builder
	if ts, ok := rec[slog.TimeKey].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			ts = t.In(p.loc).Format(time.DateTime)
		}
		out.WriteString(ts + " ")
	}
	if level, ok := rec[slog.LevelKey].(string); ok {
		out.WriteString(p.color(levelColor(level), level+":") + " ")
	}
	if msg, ok := rec[slog.MessageKey].(string); ok {
		out.WriteString(msg)
	}
	delete(rec, slog.TimeKey)
	delete(rec, slog.LevelKey)
	delete(rec, slog.MessageKey)

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out.WriteString(" " + p.color(darkGray, k+"="+formatValue(rec[k])))
	}

	_, err := io.WriteString(p.w, out.String()+"\n")
	return err
}

func levelColor(level string) int {
	switch {
	case strings.HasPrefix(level, "DEBUG"):
		return lightGray
	case strings.HasPrefix(level, "INFO"):
		return cyan
	case strings.HasPrefix(level, "WARN"):
		return lightYellow
	default:
		return red
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		if v == "" || strings.ContainsAny(v, " \t\"=") {
			return strconv.Quote(v)
		}
		return v
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
