package logger

import (
	"log/slog"
	"time"
)

// slowThreshold marks dispatches worth a warning even when they succeed.
const slowThreshold = 2 * time.Second

// LogCommand records one dispatch outcome. kind distinguishes slash commands
// from component interactions; the status attr is what the log skim filters
// on.
func LogCommand(kind, name, userName, userID string, took time.Duration, err error) {
	attrs := []any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.String("user_id", userID),
		slog.String("user_name", userName),
		slog.Duration("took", took),
	}

	switch {
	case err != nil:
		slog.Error(kind+" failed", append(attrs,
			slog.Any("error", err),
			slog.String("status", "failed"),
		)...)
	case took > slowThreshold:
		slog.Warn(kind+" executed slowly", append(attrs,
			slog.String("status", "slow"),
		)...)
	default:
		slog.Info(kind+" completed", append(attrs,
			slog.String("status", "success"),
		)...)
	}
}

// LogQuery records one raw database operation outside the bun query builder.
func LogQuery(operation, query string, took time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", operation),
		slog.String("query", query),
		slog.Duration("took", took),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
		return
	}
	slog.Info("Query executed", attrs...)
}

// LogSystem logs lifecycle events: startup, shutdown, schema setup.
func LogSystem(msg string, attrs ...any) {
	slog.Info(msg, append([]any{slog.String("type", "sys")}, attrs...)...)
}

// LogError logs a background failure that has no interaction to answer to.
func LogError(msg string, err error, attrs ...any) {
	base := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(base, attrs...)...)
}
