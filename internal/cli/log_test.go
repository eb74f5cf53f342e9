package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("test message")
	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay to ensure measurable duration
	time.Sleep(10 * time.Millisecond)

	prog.done("converged")

	if !bytes.Contains(buf.Bytes(), []byte("converged")) {
		t.Error("progress.done() output should contain the message")
	}
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	customLogger := newLogger(&buf, log.InfoLevel)

	ctx = withLogger(ctx, customLogger)
	retrieved := loggerFromContext(ctx)

	if retrieved != customLogger {
		t.Error("loggerFromContext should return the attached logger")
	}

	retrieved.Info("test")
	if buf.Len() == 0 {
		t.Error("custom logger should write to buffer")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	// Without a logger in context, the default logger is returned.
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should never return nil")
	}
}
