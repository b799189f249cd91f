package logger_test

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goccy/tablenum/internal/logger"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))
	logger.Logger(ctx).Debug("hello", zap.String("token", "1y"))
	if logs.Len() != 1 {
		t.Fatalf("expected one entry but got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "hello" || entry.ContextMap()["token"] != "1y" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestLoggerWithoutValue(t *testing.T) {
	l := logger.Logger(context.Background())
	if l == nil {
		t.Fatal("expected no-op logger")
	}
	l.Info("discarded")
}
