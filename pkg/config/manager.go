package config

import (
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Manager 配置管理器接口
type Manager interface {
	// LoadFile 加载配置文件，格式由扩展名或 WithConfigType 决定
	LoadFile(path string) error
	// Unmarshal 解析整个配置到结构体
	Unmarshal(v any) error
	// UnmarshalKey 解析指定路径的配置，如 "save.sqlite"
	UnmarshalKey(key string, v any) error
	// IsSet 检查配置项是否存在
	IsSet(key string) bool
	// Watch 监听配置文件变化
	Watch(callback func()) error
}

type manager struct {
	v         *viper.Viper
	envPrefix string
	mu        sync.RWMutex
	callbacks []func()
}

// NewManager 创建配置管理器
func NewManager(opts ...Option) Manager {
	m := &manager{v: viper.New()}
	for _, opt := range opts {
		opt(m)
	}

	if m.envPrefix != "" {
		m.v.SetEnvPrefix(m.envPrefix)
		m.v.AutomaticEnv()
		m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	}
	return m
}

func (m *manager) LoadFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrConfigFileNotFound, "path %s", path)
		}
		return errors.Wrapf(err, "failed to stat config file %s", path)
	}

	m.v.SetConfigFile(path)
	if err := m.v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	return nil
}

// decodeHook 支持 "2s" 形式的 time.Duration 与逗号分隔的切片
func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

func (m *manager) Unmarshal(v any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.v.Unmarshal(v, decodeHook()); err != nil {
		return errors.Wrap(err, "failed to unmarshal config")
	}
	return nil
}

func (m *manager) UnmarshalKey(key string, v any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.v.UnmarshalKey(key, v, decodeHook()); err != nil {
		return errors.Wrapf(err, "failed to unmarshal key %s", key)
	}
	return nil
}

func (m *manager) IsSet(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.IsSet(key)
}

func (m *manager) Watch(callback func()) error {
	m.mu.Lock()
	m.callbacks = append(m.callbacks, callback)
	first := len(m.callbacks) == 1
	m.mu.Unlock()

	if !first {
		return nil
	}

	m.v.OnConfigChange(func(fsnotify.Event) {
		m.mu.RLock()
		callbacks := m.callbacks
		m.mu.RUnlock()

		for _, cb := range callbacks {
			cb()
		}
	})
	m.v.WatchConfig()
	return nil
}

// Load 一步完成：读取文件 → 合并到 target（target 预先填好默认值）→ 结构体校验
func Load(path string, target any, opts ...Option) error {
	m := NewManager(opts...)
	if err := m.LoadFile(path); err != nil {
		return err
	}
	if err := m.Unmarshal(target); err != nil {
		return err
	}
	return NewValidator().Validate(target)
}
