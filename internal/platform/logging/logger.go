package logging

import (
	"context"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Logger wraps zap with slog-style key/value arguments. The *Context variants
// also attach trace ids and any fields stored with ContextWith.
type Logger struct {
	zap    *zap.Logger
	synced *atomic.Bool
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

// New uses a console encoder in dev and JSON everywhere else.
func New(env string, level Level) *Logger {
	if env == "dev" {
		return NewConsole(level)
	}
	return NewJSON(level)
}

func NewJSON(level Level) *Logger {
	return build(zapcore.NewJSONEncoder(encoderConfig()), level)
}

func NewConsole(level Level) *Logger {
	cfg := encoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return build(zapcore.NewConsoleEncoder(cfg), level)
}

func build(encoder zapcore.Encoder, level Level) *Logger {
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	return FromZap(zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(2),
		zap.AddStacktrace(zapcore.ErrorLevel),
	))
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "msg"
	cfg.FunctionKey = zapcore.OmitKey
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

func NewNop() *Logger {
	return FromZap(zap.NewNop())
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z, synced: new(atomic.Bool)}
}

func Default() *Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	return NewNop()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	defaultLogger.Store(logger)
}

// Sync flushes buffered entries once; later calls are no-ops.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	if l.synced.CompareAndSwap(false, true) {
		return l.zap.Sync()
	}
	return nil
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		l = Default()
	}
	return &Logger{zap: l.zap.With(fields(args)...), synced: l.synced}
}

func (l *Logger) Debug(msg string, args ...any) { l.write(nil, zapcore.DebugLevel, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(nil, zapcore.InfoLevel, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(nil, zapcore.WarnLevel, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(nil, zapcore.ErrorLevel, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zapcore.DebugLevel, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zapcore.InfoLevel, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zapcore.WarnLevel, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, zapcore.ErrorLevel, msg, args)
}

func (l *Logger) write(ctx context.Context, level zapcore.Level, msg string, args []any) {
	if l == nil {
		l = Default()
	}
	ce := l.zap.Check(level, msg)
	if ce == nil {
		return
	}

	out := fields(args)
	if ctx != nil {
		if scoped, ok := ctx.Value(fieldsKey{}).([]zap.Field); ok {
			out = append(out, scoped...)
		}
		if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
			out = append(out,
				zap.String("trace_id", spanCtx.TraceID().String()),
				zap.String("span_id", spanCtx.SpanID().String()),
			)
		}
	}
	ce.Write(out...)
}

type fieldsKey struct{}

// ContextWith returns ctx carrying extra key/value pairs that every *Context
// log call made with it will include.
func ContextWith(ctx context.Context, args ...any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(fieldsKey{}).([]zap.Field)
	merged := make([]zap.Field, 0, len(existing)+len(args)/2)
	merged = append(merged, existing...)
	merged = append(merged, fields(args)...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// fields pairs args as key/value. A non-string key becomes "arg" and a
// trailing key without value is kept with a nil value.
func fields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}

	out := make([]zap.Field, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg"
		}
		if i+1 >= len(args) {
			out = append(out, zap.Any(key, nil))
			break
		}

		switch value := args[i+1].(type) {
		case error:
			out = append(out, zap.NamedError(key, value))
		case string:
			out = append(out, zap.String(key, value))
		case int64:
			out = append(out, zap.Int64(key, value))
		default:
			out = append(out, zap.Any(key, value))
		}
	}
	return out
}
