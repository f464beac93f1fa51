//go:build debugprintlog

package internal

import (
	"log/slog"
)

func LogEnabled(l *slog.Logger, lvl slog.Level) bool {
	return true
}

func LogAttrs(_ *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if level == LevelTrace {
		print("TRACE ")
	} else {
		print(level.String(), " ")
	}
	print(msg)
	for _, a := range attrs {
		switch a.Value.Kind() {
		case slog.KindString:
			print(" ", a.Key, "=", a.Value.String())
		case slog.KindInt64:
			print(" ", a.Key, "=", a.Value.Int64())
		case slog.KindUint64:
			print(" ", a.Key, "=", a.Value.Uint64())
		case slog.KindBool:
			print(" ", a.Key, "=", a.Value.Bool())
		case slog.KindDuration:
			print(" ", a.Key, "=", int64(a.Value.Duration()))
		}
	}
	println()
}
