package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{name: "info at info level", level: log.InfoLevel, logFunc: func(l *log.Logger) { l.Info("x") }, wantLog: true},
		{name: "debug at info level", level: log.InfoLevel, logFunc: func(l *log.Logger) { l.Debug("x") }, wantLog: false},
		{name: "debug at debug level", level: log.DebugLevel, logFunc: func(l *log.Logger) { l.Debug("x") }, wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Laid out 2 workspaces")
	if !strings.Contains(buf.String(), "Laid out 2 workspaces (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext() should return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext() should fall back to the default logger")
	}
}
