package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
)

// statusPrinter writes one progress line per event. It is safe for
// concurrent use.
type statusPrinter struct {
	mu   sync.Mutex
	w    io.Writer
	verb *color.Color
}

func newStatusPrinter(w io.Writer, noColor bool) *statusPrinter {
	verb := color.New(color.FgGreen, color.Bold)
	if noColor || color.NoColor || os.Getenv("NO_COLOR") != "" {
		verb.DisableColor()
	}
	return &statusPrinter{w: w, verb: verb}
}

// Printf prints verb, highlighted, followed by the formatted message.
func (s *statusPrinter) Printf(verb, format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s %s\n", s.verb.Sprint(verb), fmt.Sprintf(format, args...))
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
