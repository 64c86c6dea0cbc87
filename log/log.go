// log/log.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	LogDir  string
	Start   time.Time
}

// New returns a Logger that writes JSON records to a rotating log file in
// dir; if dir is empty, a DesignFly directory under the user's config
// directory is used.
func New(level string, dir string) *Logger {
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to find user config dir: %v", err)
			dir = "."
		}
		dir = filepath.Join(dir, "DesignFly")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "designfly.slog"),
		MaxSize:    32, // MB
		MaxBackups: 1,
	}
	if level == "debug" {
		w.MaxSize = 512
	}

	l := NewWithWriter(w, level)
	l.LogFile = w.Filename
	l.LogDir = dir

	// Start out the logs with some basic information about the system
	// we're running on and the build that's being used.
	l.Info("Hello logging", slog.Time("start", time.Now()))
	l.Info("System information",
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()))

	var deps, settings []any
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			deps = append(deps, slog.String(dep.Path, dep.Version))
			if dep.Replace != nil {
				deps = append(deps, slog.String("Replacement "+dep.Replace.Path, dep.Replace.Version))
			}
		}
		for _, setting := range bi.Settings {
			settings = append(settings, slog.String(setting.Key, setting.Value))
		}

		l.Info("Build",
			slog.String("Go version", bi.GoVersion),
			slog.String("Path", bi.Path),
			slog.Group("Dependencies", deps...),
			slog.Group("Settings", settings...))
	}

	return l
}

// NewWithWriter returns a Logger that writes JSON records to w; it is
// mostly useful for tests that want to inspect what was logged.
func NewWithWriter(w io.Writer, level string) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{
		Logger: slog.New(h),
		Start:  time.Now(),
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level", level)
		return slog.LevelInfo
	}
}

// The logging methods attach the caller's stack to each record. A nil
// *Logger is allowed: debug and info messages are then dropped, while
// warnings and errors go to slog's default logger. Errors are always
// echoed there too so that they reach the terminal.
func (l *Logger) Debug(msg string, args ...any) { l.emit(slog.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any) { l.emit(slog.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any) { l.emit(slog.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.emit(slog.LevelError, msg, args) }

func (l *Logger) Debugf(msg string, args ...any) {
	l.emit(slog.LevelDebug, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Infof(msg string, args ...any) {
	l.emit(slog.LevelInfo, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.emit(slog.LevelWarn, fmt.Sprintf(msg, args...), nil)
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.emit(slog.LevelError, fmt.Sprintf(msg, args...), nil)
}

// emit must be called directly from one of the exported logging methods;
// the callstack skips both of them.
func (l *Logger) emit(level slog.Level, msg string, args []any) {
	ctx := context.Background()

	var sinks []*slog.Logger
	if l != nil {
		sinks = append(sinks, l.Logger)
	}
	if l == nil && level >= slog.LevelWarn || level >= slog.LevelError {
		sinks = append(sinks, slog.Default())
	}

	var stack []StackFrame
	for _, sl := range sinks {
		if !sl.Enabled(ctx, level) {
			continue
		}
		if stack == nil {
			stack = callstack(nil, 4)
		}
		sl.Log(ctx, level, msg, append([]any{slog.Any("callstack", stack)}, args...)...)
	}
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		LogDir:  l.LogDir,
		Start:   l.Start,
	}
}

// CatchAndReportCrash should be deferred at the top of main; it logs the
// panic along with a stack trace and saves a crash report next to the
// log file.
func (l *Logger) CatchAndReportCrash() any {
	// Let dlv catch the panic itself.
	if dlv, ok := os.LookupEnv("_"); ok && strings.HasSuffix(dlv, "/dlv") {
		return nil
	}

	err := recover()
	if err != nil {
		l.Errorf("Crashed: %v", err)

		report := fmt.Sprintf("Crashed: %v\n", err)
		report += "Sys: " + runtime.GOARCH + "/" + runtime.GOOS + "\n"

		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range bi.Settings {
				report += setting.Key + ": " + setting.Value + "\n"
			}
		}
		report += string(debug.Stack())

		fmt.Println(report)

		if l != nil && l.LogDir != "" {
			fn := filepath.Join(l.LogDir, "crash-"+time.Now().Format(time.RFC3339)+".txt")
			_ = os.WriteFile(fn, []byte(report), 0o600)
		}
	}

	return err
}
