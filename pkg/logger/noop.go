// pkg/logger/noop.go
package logger

var _ Logger = (*NoopLogger)(nil)

// NoopLogger 空日志记录器
// 作为可选依赖的默认值，避免调用方做 nil 检查
type NoopLogger struct{}

// NewNoop 创建空日志记录器
func NewNoop() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string, keysAndValues ...interface{}) {}

func (l *NoopLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l *NoopLogger) Warn(msg string, keysAndValues ...interface{}) {}

func (l *NoopLogger) Error(msg string, keysAndValues ...interface{}) {}

func (l *NoopLogger) Named(name string) Logger { return l }

func (l *NoopLogger) WithFields(keysAndValues ...interface{}) Logger { return l }

func (l *NoopLogger) Sync() error { return nil }

// OrNoop 返回 l，若 l 为 nil 则返回 NoopLogger
func OrNoop(l Logger) Logger {
	if l == nil {
		return NewNoop()
	}
	return l
}
