// Package logger owns the global structured logger. Log output goes to
// a rotating file so it never corrupts the alternate-screen TUI; recent
// WARN/ERROR entries are retained in a ring buffer for the status bar
// badge.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured WARN or ERROR log line.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Format renders an entry for on-screen display.
func (e Entry) Format() string {
	level := "WARN"
	if e.Level >= slog.LevelError {
		level = "ERROR"
	}
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), level, e.Message)
}

type ringBuffer struct {
	mu      sync.RWMutex
	entries []Entry
	head    int
	count   int

	warnCount  int
	errorCount int
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{entries: make([]Entry, size)}
}

func (rb *ringBuffer) add(e Entry) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.entries[rb.head] = e
	rb.head = (rb.head + 1) % len(rb.entries)
	if rb.count < len(rb.entries) {
		rb.count++
	}
	if e.Level >= slog.LevelError {
		rb.errorCount++
	} else if e.Level == slog.LevelWarn {
		rb.warnCount++
	}
}

func (rb *ringBuffer) all() []Entry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	out := make([]Entry, rb.count)
	for i := 0; i < rb.count; i++ {
		out[i] = rb.entries[(rb.head-rb.count+i+len(rb.entries))%len(rb.entries)]
	}
	return out
}

func (rb *ringBuffer) counts() (warn, errs int) {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.warnCount, rb.errorCount
}

// captureHandler tees WARN+ records into the ring buffer on their way
// to the file handler.
type captureHandler struct {
	inner  slog.Handler
	buffer *ringBuffer
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.buffer.add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), buffer: h.buffer}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), buffer: h.buffer}
}

var (
	log       *slog.Logger
	logWriter *lumberjack.Logger
	buffer    *ringBuffer
)

// Init initializes the global logger. An empty path defaults to
// ~/.config/mosaic/mosaic.log.
func Init(level slog.Level, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		path = filepath.Join(home, ".config", "mosaic", "mosaic.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	logWriter = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}

	buffer = newRingBuffer(100)
	handler := &captureHandler{
		inner:  slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: level}),
		buffer: buffer,
	}
	log = slog.New(handler)
	slog.SetDefault(log)
	return nil
}

// Close flushes and closes the log file.
func Close() {
	if logWriter != nil {
		_ = logWriter.Close()
	}
}

func get() *slog.Logger {
	if log != nil {
		return log
	}
	return slog.Default()
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { get().Info(msg, args...) }

// Warn logs a warning.
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Error logs an error.
func Error(msg string, args ...any) { get().Error(msg, args...) }

// Counts returns the warning and error totals since startup.
func Counts() (warn, errs int) {
	if buffer == nil {
		return 0, 0
	}
	return buffer.counts()
}

// Entries returns the retained WARN/ERROR entries, oldest first.
func Entries() []Entry {
	if buffer == nil {
		return nil
	}
	return buffer.all()
}
