// Package logger は構造化ロガー（log/slog）の生成を提供します。
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel はログレベル名を slog.Level に変換します。
// DEBUG/INFO/WARNING/ERROR/CRITICAL と slog の名前（WARN など）を大文字小文字を区別せず受け付けます。
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO", "":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR", "CRITICAL", "FATAL":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New は w にJSONで出力するロガーを生成します。不明なレベル名はINFOとして扱い、警告を出力します。
func New(level string, w io.Writer) *slog.Logger {
	lv, ok := ParseLevel(level)
	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv}))
	if !ok {
		l.Warn("unknown log level, falling back to INFO", "level", level)
	}
	return l
}
