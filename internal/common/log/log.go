package log

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/sovr-labs/go-fp-clearing/internal/common/ctxdata"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DefaultLogger = "default"

type (
	Field           = zap.Field
	ObjectEncoder   = zapcore.ObjectEncoder
	ObjectMarshaler = zapcore.ObjectMarshaler
	Level           = zapcore.Level
)

// Loggers holds every initialised *zap.Logger keyed by name. The default
// logger is stored under DefaultLogger.
var Loggers sync.Map

var (
	String   = zap.String
	Int      = zap.Int
	Int32    = zap.Int32
	Int64    = zap.Int64
	Uint     = zap.Uint
	Uint64   = zap.Uint64
	Bool     = zap.Bool
	Float64  = zap.Float64
	Duration = zap.Duration
	Time     = zap.Time
	Any      = zap.Any
	Strings  = zap.Strings
	Object   = zap.Object
)

func Err(err error) Field {
	return zap.Error(err)
}

func Stringer(key string, val fmt.Stringer) Field {
	return zap.Stringer(key, val)
}

type options struct {
	logTo      string
	env        string
	caller     bool
	callerSkip int
	level      zapcore.Level
}

type Option func(*options)

func WithLogToOption(to string) Option {
	return func(o *options) { o.logTo = to }
}

func WithLogEnvOption(env string) Option {
	return func(o *options) { o.env = env }
}

func WithCaller(enabled bool) Option {
	return func(o *options) { o.caller = enabled }
}

func AddCallerSkip(skip int) Option {
	return func(o *options) { o.callerSkip = skip }
}

func WithLevel(level zapcore.Level) Option {
	return func(o *options) { o.level = level }
}

func DebugLogLevel() Option { return WithLevel(zapcore.DebugLevel) }

func InfoLogLevel() Option { return WithLevel(zapcore.InfoLevel) }

// ParseLevel returns InfoLogLevel when level is empty or unknown.
func ParseLevel(level string) Option {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return InfoLogLevel()
	}
	return WithLevel(lvl)
}

// Init builds the default logger. Calling it again replaces the default.
func Init(name string, opts ...Option) {
	o := options{
		logTo:  "stdout",
		level:  zapcore.InfoLevel,
		caller: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if o.env == "" || o.env == "local" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	sink := zapcore.Lock(os.Stdout)
	if o.logTo == "stderr" {
		sink = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(o.level))

	zopts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if o.caller {
		zopts = append(zopts, zap.AddCaller(), zap.AddCallerSkip(o.callerSkip))
	}

	logger := zap.New(core, zopts...).With(zap.String("service", name))
	if o.env != "" {
		logger = logger.With(zap.String("env", o.env))
	}

	Loggers.Store(DefaultLogger, logger)
}

// InitForTest installs a no-op logger.
func InitForTest() {
	Loggers.Store(DefaultLogger, zap.NewNop())
}

func Sync() {
	Loggers.Range(func(_, v any) bool {
		if l, ok := v.(*zap.Logger); ok {
			_ = l.Sync()
		}
		return true
	})
}

// Default returns the default logger, initialising a production logger when
// Init was never called.
func Default() *zap.Logger {
	if v, ok := Loggers.Load(DefaultLogger); ok {
		return v.(*zap.Logger)
	}
	Init("app", AddCallerSkip(1))
	v, _ := Loggers.Load(DefaultLogger)
	return v.(*zap.Logger)
}

func withContext(ctx context.Context, fields []Field) []Field {
	d := ctxdata.Get(ctx)
	if d.CorrelationID != "" {
		fields = append(fields, zap.String("correlation_id", d.CorrelationID))
	}
	if d.Host != "" {
		fields = append(fields, zap.String("host", d.Host))
	}
	return fields
}

func logger() *zap.Logger {
	return Default().WithOptions(zap.AddCallerSkip(1))
}

func Debug(ctx context.Context, msg string, fields ...Field) {
	logger().Debug(msg, withContext(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	logger().Info(msg, withContext(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	logger().Warn(msg, withContext(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	logger().Error(msg, withContext(ctx, fields)...)
}

func Fatal(ctx context.Context, msg string, fields ...Field) {
	logger().Fatal(msg, withContext(ctx, fields)...)
}

func Debugf(ctx context.Context, format string, args ...any) {
	logger().Debug(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}

func Infof(ctx context.Context, format string, args ...any) {
	logger().Info(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	logger().Warn(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	logger().Error(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	logger().Fatal(fmt.Sprintf(format, args...), withContext(ctx, nil)...)
}
