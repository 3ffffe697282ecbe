package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"log/syslog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/rhpds/assisted-add-manifest/internal/app"
	"github.com/rhpds/assisted-add-manifest/internal/config"
)

// NewLogger builds the logger injected into every component of one
// module run. Logs never go to stdout, which carries the result
// document. Each record is tagged with a fresh invocation id.
func NewLogger(conf *config.Config) (*slog.Logger, func(), error) {
	var (
		w         io.Writer = os.Stderr
		cleanup             = func() {}
		syslogErr error
	)

	if conf.LogSyslog() {
		sw, err := syslog.New(syslog.LOG_INFO|syslog.LOG_USER, app.ModuleName)
		if err != nil {
			syslogErr = err
		} else {
			w = sw
			cleanup = func() { _ = sw.Close() }
		}
	}

	log, err := newRunLogger(conf, w)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if syslogErr != nil {
		log.Warn("syslog unavailable, logging to stderr", "error", syslogErr)
	}

	return log, cleanup, nil
}

func newRunLogger(conf *config.Config, w io.Writer) (*slog.Logger, error) {
	log, err := newLogger(conf.LogLevel(), conf.LogFormat(), w)
	if err != nil {
		return nil, err
	}
	log = log.With("invocation_id", uuid.NewString())
	if path := conf.ConfigFileUsed(); path != "" {
		log.Debug("loaded config file", "path", path)
	}
	return log, nil
}

func newLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unsupported log level %q", level)
	}
}
