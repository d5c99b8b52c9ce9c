// Package obs owns the global structured logger for the harness.
// Log lines are JSON on stderr so they interleave cleanly with `go test`
// output and can be collected as run evidence.
package obs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type runContextKey struct{}

// RunInfo carries per-run and per-test correlation fields.
type RunInfo struct {
	RunID    string
	TestName string
	Page     string
}

var (
	loggerMu sync.RWMutex
	logger   *slog.Logger
)

// Init configures the global structured logger. Safe to call more than once.
func Init() {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger != nil {
		return
	}
	logger = newLogger(os.Stderr)
	slog.SetDefault(logger)
}

// SetOutputForTests overrides the global logger output and returns a restore func.
func SetOutputForTests(w io.Writer) func() {
	loggerMu.Lock()
	prev := logger
	logger = newLogger(w)
	slog.SetDefault(logger)
	loggerMu.Unlock()

	return func() {
		loggerMu.Lock()
		defer loggerMu.Unlock()
		if prev != nil {
			logger = prev
		} else {
			logger = newLogger(os.Stderr)
		}
		slog.SetDefault(logger)
	}
}

func newLogger(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				t, ok := attr.Value.Any().(time.Time)
				if ok {
					return slog.String(slog.TimeKey, t.UTC().Format(time.RFC3339Nano))
				}
			}
			return attr
		},
	})
	return slog.New(handler)
}

func globalLogger() *slog.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}
	Init()
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Pkg returns a logger tagged with package name.
func Pkg(pkg string) *slog.Logger {
	return globalLogger().With("pkg", pkg)
}

// From returns a logger with run correlation fields from context.
func From(ctx context.Context) *slog.Logger {
	l := globalLogger()
	info := RunInfoFromContext(ctx)
	attrs := runAttrs(info)
	if len(attrs) == 0 {
		return l
	}
	return l.With(attrs...)
}

// WithRunInfo stores run correlation fields in context. Empty fields keep
// whatever the context already carries.
func WithRunInfo(ctx context.Context, info RunInfo) context.Context {
	existing := RunInfoFromContext(ctx)
	if info.RunID != "" {
		existing.RunID = strings.TrimSpace(info.RunID)
	}
	if info.TestName != "" {
		existing.TestName = strings.TrimSpace(info.TestName)
	}
	if info.Page != "" {
		existing.Page = strings.TrimSpace(info.Page)
	}
	return context.WithValue(ctx, runContextKey{}, existing)
}

// RunInfoFromContext returns run correlation fields from context.
func RunInfoFromContext(ctx context.Context) RunInfo {
	if ctx == nil {
		return RunInfo{}
	}
	info, ok := ctx.Value(runContextKey{}).(RunInfo)
	if !ok {
		return RunInfo{}
	}
	return info
}

func runAttrs(info RunInfo) []any {
	attrs := make([]any, 0, 6)
	if info.RunID != "" {
		attrs = append(attrs, "run_id", info.RunID)
	}
	if info.TestName != "" {
		attrs = append(attrs, "test", info.TestName)
	}
	if info.Page != "" {
		attrs = append(attrs, "page", info.Page)
	}
	return attrs
}
