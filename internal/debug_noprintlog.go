//go:build !debugprintlog

package internal

import (
	"context"
	"log/slog"
)

// LogEnabled reports whether l logs at level lvl. A nil logger never logs.
func LogEnabled(l *slog.Logger, lvl slog.Level) bool {
	return l != nil && l.Handler().Enabled(context.Background(), lvl)
}

// LogAttrs is a helper function that is used by all package loggers and that
// can be switched out with the `debugprintlog` build tag for a logger that
// prints through the runtime's print builtins, which is all some targets have.
func LogAttrs(l *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if l != nil {
		l.LogAttrs(context.Background(), level, msg, attrs...)
	}
}
