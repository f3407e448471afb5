package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level zapcore.Level, gormLevel gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return NewGormLogger(zap.New(core), gormLevel), recorded
}

func TestNewGormLogger(t *testing.T) {
	gormLog, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info)

	assert.NotNil(t, gormLog)
	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	assert.Equal(t, defaultSlowThreshold, gormLog.slowThreshold)
}

func TestGormLogger_LogMode(t *testing.T) {
	gormLog, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info)

	clone := gormLog.LogMode(gormlogger.Warn)

	// Original is unchanged, the clone carries the new level
	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	cloned, ok := clone.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, cloned.logLevel)
}

func TestGormLogger_Info(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info)

	gormLog.Info(context.Background(), "test message %s", "value")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "test message value")
}

func TestGormLogger_Info_Suppressed(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Silent)

	gormLog.Info(context.Background(), "test message")

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Warn(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(zapcore.WarnLevel, gormlogger.Warn)

	gormLog.Warn(context.Background(), "warning message %d", 42)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "warning message 42")
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
}

func TestGormLogger_Error(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(zapcore.ErrorLevel, gormlogger.Error)

	gormLog.Error(context.Background(), "error message")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
}

func TestGormLogger_Trace_Error(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(zapcore.ErrorLevel, gormlogger.Error)

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM products", 0
	}, errors.New("connection reset"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "SQL Error")
}

func TestGormLogger_Trace_RecordNotFoundIgnored(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(zapcore.ErrorLevel, gormlogger.Error)

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM products WHERE id = ?", 0
	}, gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_SlowQuery(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(zapcore.WarnLevel, gormlogger.Warn)

	// A begin time in the past simulates a slow query
	gormLog.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM orders", 10
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "SLOW SQL")
}

func TestGormLogger_Trace_NormalQuery(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Info)

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders", 5
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "SQL Query")
}

func TestGormLogger_Trace_Silent(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Silent)

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders", 5
	}, nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_CorrelationFields(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Info)

	ctx := context.WithValue(context.Background(), RequestIDKey, "test-req-id")
	ctx = context.WithValue(ctx, TenantIDKey, "tenant-1")

	gormLog.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM stores", 5
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)

	fields := map[string]string{}
	for _, field := range logs[0].Context {
		fields[field.Key] = field.String
	}
	assert.Equal(t, "test-req-id", fields["request_id"])
	assert.Equal(t, "tenant-1", fields["tenant_id"])
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
