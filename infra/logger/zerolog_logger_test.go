package logger

import (
	"testing"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("structured", map[string]any{"iteration": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewWithLevel_UnknownFallsBackToInfo(t *testing.T) {
	if l := NewWithLevel("test", "shouting"); l == nil {
		t.Fatalf("nil logger")
	}
	if l := NewWithLevel("test", "debug"); l == nil {
		t.Fatalf("nil logger")
	}
}
