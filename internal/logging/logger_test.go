package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wellness-go/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestInitWritesPerLevelFiles(t *testing.T) {
	root := t.TempDir()
	log, err := Init(root, config.LoggingConfig{Directory: "logs", MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	log.Info("hello")
	log.Warn("careful")
	_ = log.Sync()

	date := time.Now().Format("2006-01-02")
	for _, level := range []string{"info", "warn"} {
		path := filepath.Join(root, "logs", date+"-"+level+".log")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "logs", date+"-error.log")); !os.IsNotExist(err) {
		t.Fatalf("error log should not exist before an error is logged (err=%v)", err)
	}
}

func TestGormZapLoggerTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewGormZapLogger(zap.New(core))
	sql := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	if logs.Len() != 0 {
		t.Fatalf("record not found should not be logged, got %d entries", logs.Len())
	}

	l.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	if got := logs.FilterMessage("query failed").Len(); got != 1 {
		t.Fatalf("query failed entries = %d, want 1", got)
	}

	l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	if got := logs.FilterMessage("slow query").Len(); got != 1 {
		t.Fatalf("slow query entries = %d, want 1", got)
	}

	silent := l.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	if got := logs.FilterMessage("query failed").Len(); got != 1 {
		t.Fatalf("silent logger logged: %d", got)
	}
}
