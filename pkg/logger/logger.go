// pkg/logger/logger.go
package logger

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 确保 BaseLogger 实现了 Logger 接口
var _ Logger = (*BaseLogger)(nil)

// BaseLogger 基于 zap 的日志记录器实现
type BaseLogger struct {
	zl     *zap.Logger
	config *Config
	name   string
	hooks  []Hook
}

// New 创建新的 BaseLogger
// cfg 可以只填部分字段，未填字段使用 DefaultConfig 的值
func New(cfg *Config, opts ...Option) (*BaseLogger, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge logger config")
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	l := &BaseLogger{config: merged}
	for _, opt := range opts {
		opt(l)
	}

	zl, err := l.build()
	if err != nil {
		return nil, err
	}
	l.zl = zl
	return l, nil
}

// NewWithCore 直接基于 zapcore.Core 创建 logger
// 主要用于测试 (zaptest/observer) 或宿主程序已有 zap core 的场景
func NewWithCore(core zapcore.Core, opts ...Option) *BaseLogger {
	l := &BaseLogger{config: DefaultConfig()}
	for _, opt := range opts {
		opt(l)
	}
	if len(l.hooks) > 0 {
		core = NewHookedCore(core, l.hooks...)
	}
	zl := zap.New(core)
	if l.name != "" {
		zl = zl.Named(l.name)
	}
	l.zl = zl
	return l
}

func (l *BaseLogger) build() (*zap.Logger, error) {
	encCfg := l.encoderConfig()

	var encoder zapcore.Encoder
	if l.config.Format == ConsoleFormat {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	writers := make([]zapcore.WriteSyncer, 0, 2)
	if l.config.EnableConsole {
		writers = append(writers, zapcore.AddSync(os.Stdout))
	}
	if l.config.EnableFile {
		w, err := NewRotationWriter(&l.config.Rotation, l.config.OutputPath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create rotation writer")
		}
		writers = append(writers, zapcore.AddSync(w))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writers...), parseLevel(l.config.Level))
	if len(l.hooks) > 0 {
		core = NewHookedCore(core, l.hooks...)
	}

	options := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if l.config.EnableStacktrace {
		options = append(options, zap.AddStacktrace(parseLevel(l.config.StacktraceLevel)))
	}
	if l.config.Development {
		options = append(options, zap.Development())
	}

	zl := zap.New(core, options...)
	if len(l.config.GlobalFields) > 0 {
		fields := make([]zap.Field, 0, len(l.config.GlobalFields))
		for k, v := range l.config.GlobalFields {
			fields = append(fields, zap.Any(k, v))
		}
		zl = zl.With(fields...)
	}
	if l.name != "" {
		zl = zl.Named(l.name)
	}
	return zl, nil
}

func (l *BaseLogger) encoderConfig() zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
	}
	if l.config.TimeFormat != "" {
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout(l.config.TimeFormat)
	}
	if l.config.Development {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}

func parseLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *BaseLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.zl.Debug(msg, toZapFields(keysAndValues)...)
}

func (l *BaseLogger) Info(msg string, keysAndValues ...interface{}) {
	l.zl.Info(msg, toZapFields(keysAndValues)...)
}

func (l *BaseLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.zl.Warn(msg, toZapFields(keysAndValues)...)
}

func (l *BaseLogger) Error(msg string, keysAndValues ...interface{}) {
	l.zl.Error(msg, toZapFields(keysAndValues)...)
}

// Named 创建具名 logger
func (l *BaseLogger) Named(name string) Logger {
	return &BaseLogger{
		zl:     l.zl.Named(name),
		config: l.config,
		name:   name,
		hooks:  l.hooks,
	}
}

// WithFields 添加固定字段
func (l *BaseLogger) WithFields(keysAndValues ...interface{}) Logger {
	fields := toZapFields(keysAndValues)
	if len(fields) == 0 {
		return l
	}
	return &BaseLogger{
		zl:     l.zl.With(fields...),
		config: l.config,
		name:   l.name,
		hooks:  l.hooks,
	}
}

func (l *BaseLogger) Sync() error {
	return l.zl.Sync()
}

// Zap 返回底层 zap.Logger
func (l *BaseLogger) Zap() *zap.Logger {
	return l.zl
}

// toZapFields 将 key-value 对转换为 zap.Field
// 奇数个参数时最后一个值以 "!BADKEY" 记录，避免静默丢字段
func toZapFields(keysAndValues []interface{}) []zap.Field {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make([]zap.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		if f, ok := keysAndValues[i].(zap.Field); ok {
			fields = append(fields, f)
			i--
			continue
		}
		if i+1 >= len(keysAndValues) {
			fields = append(fields, zap.Any("!BADKEY", keysAndValues[i]))
			break
		}
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
