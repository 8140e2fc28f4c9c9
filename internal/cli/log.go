package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var logLevels = []string{"debug", "info", "warn", "error"}

func registerLoggingFlags(cmd *cobra.Command, a *app) {
	cmd.PersistentFlags().StringVar(&a.logLevel, "loglevel", "warn",
		fmt.Sprintf("set the log level (%s)", strings.Join(logLevels, ", ")))
	cmd.PersistentFlags().StringVar(&a.logFormat, "logformat", "text", "set the log format (text, json)")
}

// newLogger builds the diagnostic logger. It writes to stderr so the script
// emitted by load stays clean.
func (a *app) newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := parseLogLevel(a.logLevel)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch a.logFormat {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", a.logFormat)
	}
	return slog.New(handler), nil
}

func parseLogLevel(s string) (slog.Level, error) {
	if !slices.Contains(logLevels, s) {
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", s)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", s)
	}
	return level, nil
}
