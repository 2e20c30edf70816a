package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/melbooking/melbooking_backend/config"
	"github.com/melbooking/melbooking_backend/pkg/constants"
)

// New builds the process logger from config. Records fan out to stdout,
// a rotating file and Loki, whichever are enabled, and every record
// logged with a request context carries request_id and store_id.
// The returned func flushes Loki and must run before exit.
func New(cfg *config.Config) (*slog.Logger, func()) {
	level := parseLevel(cfg.Logging.Level)
	out := cfg.Logging.Output

	var handlers []slog.Handler
	if w := localWriter(out); w != nil {
		handlers = append(handlers, localHandler(cfg, w, level))
	}

	flush := func() {}
	if out.Loki.Enabled {
		h, stop, err := newLokiHandler(out.Loki, level)
		if err != nil {
			defer slog.Warn("loki output disabled", "error", err)
		} else {
			handlers = append(handlers, h)
			flush = stop
		}
	}

	var h slog.Handler
	switch len(handlers) {
	case 0:
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case 1:
		h = handlers[0]
	default:
		h = &multiHandler{handlers: handlers}
	}

	logger := slog.New(contextHandler{h}).With(
		slog.String("service", cfg.Observability.ServiceName),
		slog.String("version", cfg.Observability.ServiceVersion),
		slog.String("env", cfg.Server.Environment),
	)
	return logger, flush
}

// localWriter combines stdout and the rotating file. Stdout is forced on
// when no other output is configured.
func localWriter(out config.OutputConfig) io.Writer {
	var writers []io.Writer
	if out.Stdout || (!out.File.Enabled && !out.Loki.Enabled) {
		writers = append(writers, os.Stdout)
	}
	if out.File.Enabled {
		writers = append(writers, &lumberjack.Logger{
			Filename:   out.File.Path,
			MaxSize:    out.File.MaxSizeMB,
			MaxBackups: out.File.MaxBackups,
			MaxAge:     out.File.MaxAgeDays,
			Compress:   out.File.Compress,
		})
	}
	switch len(writers) {
	case 0:
		return nil
	case 1:
		return writers[0]
	default:
		return io.MultiWriter(writers...)
	}
}

// localHandler writes text in development and JSON everywhere else.
func localHandler(cfg *config.Config, w io.Writer, level slog.Level) slog.Handler {
	dev := strings.EqualFold(cfg.Server.Environment, "development")
	opts := &slog.HandlerOptions{Level: level, AddSource: dev}
	if dev && !strings.EqualFold(cfg.Logging.Format, "json") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// Default is the logger used before config is read.
func Default() *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(contextHandler{h}).With(slog.String("service", constants.AppName))
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Install builds the logger for cfg and makes it the slog default. Call
// the returned func on exit.
func Install(cfg *config.Config) func() {
	logger, flush := New(cfg)
	slog.SetDefault(logger)
	return flush
}
