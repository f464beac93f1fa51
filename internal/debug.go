package internal

import (
	"log/slog"
)

// LevelTrace is used for per-transaction logs on the management bus.
const LevelTrace slog.Level = slog.LevelDebug - 2

// SlogReg returns an attribute for a PHY register address.
func SlogReg(reg uint8) slog.Attr {
	return slog.Uint64("reg", uint64(reg))
}

// SlogVal returns an attribute for a 16-bit PHY register value.
func SlogVal(val uint16) slog.Attr {
	return slog.Uint64("val", uint64(val))
}
