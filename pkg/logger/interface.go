// pkg/logger/interface.go
package logger

// Logger 日志接口
// 业务模块只依赖此接口，具体实现由 BaseLogger / NoopLogger 提供
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})

	// Named 派生具名 logger，名称以 "." 连接
	Named(name string) Logger
	// WithFields 派生携带固定字段的 logger
	WithFields(keysAndValues ...interface{}) Logger

	Sync() error
}
