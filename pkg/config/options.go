package config

import "github.com/spf13/viper"

// Option 配置选项函数
type Option func(*manager)

// WithDefaults 设置默认配置值（最低优先级）
func WithDefaults(defaults map[string]any) Option {
	return func(m *manager) {
		for key, value := range defaults {
			m.v.SetDefault(key, value)
		}
	}
}

// WithConfigType 显式指定配置文件类型（yaml、json、toml 等）
func WithConfigType(configType string) Option {
	return func(m *manager) {
		m.v.SetConfigType(configType)
	}
}

// WithEnvPrefix 设置环境变量前缀，如 "XDOORIA" 会把 XDOORIA_SAVE_BACKEND 映射到 save.backend
func WithEnvPrefix(prefix string) Option {
	return func(m *manager) {
		m.envPrefix = prefix
	}
}

// WithViper 使用自定义的 Viper 实例
func WithViper(v *viper.Viper) Option {
	return func(m *manager) {
		m.v = v
	}
}
