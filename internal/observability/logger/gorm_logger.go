package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

type GormLoggerConfig struct {
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{
		Level:         gormlogger.Warn,
		SlowThreshold: 200 * time.Millisecond,
	}
}

// GormLogger writes gorm events through zap. Bound parameters are never
// logged, so amounts and employee fields stay out of the query log.
// Record-not-found is expected on lookups and is not logged as an error.
type GormLogger struct {
	base          *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger returns a logger named "db" under base. A nil base falls back
// to the global logger on every call.
func NewGormLogger(base *zap.Logger, cfg GormLoggerConfig) *GormLogger {
	if base != nil {
		base = base.Named("db")
	}
	return &GormLogger{
		base:          base,
		level:         cfg.Level,
		slowThreshold: cfg.SlowThreshold,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.event(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.event(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.event(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	switch {
	case failed && l.level >= gormlogger.Error:
		l.query(ctx, zapcore.ErrorLevel, fc, elapsed, zap.Error(err))
	case slow && l.level >= gormlogger.Warn:
		l.query(ctx, zapcore.WarnLevel, fc, elapsed, zap.Bool("slow", true))
	case l.level >= gormlogger.Info:
		l.query(ctx, zapcore.DebugLevel, fc, elapsed)
	}
}

// ParamsFilter drops bound values from statements handed to the logger.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}

func (l *GormLogger) logger(ctx context.Context) *zap.Logger {
	if l.base == nil {
		return FromContext(ctx).Named("db")
	}
	return WithContext(ctx, l.base)
}

func (l *GormLogger) event(ctx context.Context, min gormlogger.LogLevel, level zapcore.Level, msg string, data []interface{}) {
	if l.level < min {
		return
	}
	fields := []zap.Field{}
	if len(data) > 0 {
		fields = append(fields, zap.Any("data", data))
	}
	if ce := l.logger(ctx).Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

func (l *GormLogger) query(ctx context.Context, level zapcore.Level, fc func() (string, int64), elapsed time.Duration, extra ...zap.Field) {
	ce := l.logger(ctx).Check(level, "db.query")
	if ce == nil {
		return
	}

	sql, rows := fc()
	op, table := describeSQL(sql)
	fields := append([]zap.Field{
		zap.String("operation", op),
		zap.String("table", table),
		zap.String("sql", strings.TrimSpace(sql)),
		zap.Duration("duration", elapsed),
	}, extra...)
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows_affected", rows))
	}
	ce.Write(fields...)
}

// describeSQL returns the statement verb and the first table it touches.
func describeSQL(sql string) (string, string) {
	tokens := strings.Fields(strings.ToUpper(strings.TrimSpace(sql)))
	raw := strings.Fields(strings.TrimSpace(sql))

	op := "UNKNOWN"
	table := ""
	for i, token := range tokens {
		token = strings.Trim(token, "();")
		switch token {
		case "SELECT", "INSERT", "UPDATE", "DELETE":
			if op == "UNKNOWN" {
				op = token
			}
			if token == "UPDATE" && i+1 < len(raw) {
				table = tableName(raw[i+1])
			}
		case "FROM", "INTO":
			if table == "" && i+1 < len(raw) {
				table = tableName(raw[i+1])
			}
		}
		if op != "UNKNOWN" && table != "" {
			break
		}
	}
	return op, table
}

func tableName(token string) string {
	return strings.ToLower(strings.Trim(token, "\"`();"))
}

var _ gormlogger.Interface = (*GormLogger)(nil)
