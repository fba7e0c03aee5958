package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fascia/pkg/observability"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("m") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("m") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("m") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("m") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("grouped anchors")
	if !strings.Contains(buf.String(), "grouped anchors") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("loggerFromContext did not return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	registerHooks(newLogger(&buf, log.DebugLevel))
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	observability.Pipeline().OnStageStart(ctx, observability.StageGroup)
	observability.Pipeline().OnStageComplete(ctx, observability.StageGroup, 3, time.Millisecond, nil)
	observability.Pipeline().OnStageComplete(ctx, observability.StageLoad, 0, 0, errors.New("bad row"))
	observability.Cache().OnCacheMiss(ctx, "scaffold")
	observability.Storage().OnList(ctx, "images", 2, time.Millisecond, nil)

	for _, want := range []string{"stage start", "stage done", "stage failed", "bad row", "cache miss", "listed resources"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("hook log missing %q:\n%s", want, buf.String())
		}
	}
}
