package session

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/drag"
	"github.com/lk2023060901/xdooria/app/game/internal/gameconfig"
	"github.com/lk2023060901/xdooria/app/game/internal/interact"
	"github.com/lk2023060901/xdooria/app/game/internal/metrics"
	"github.com/lk2023060901/xdooria/app/game/internal/repository"
	"github.com/lk2023060901/xdooria/app/game/internal/service"
	"github.com/lk2023060901/xdooria/pkg/config"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

// EnvPrefix 环境变量前缀，如 XDOORIA_SAVE_BACKEND=sqlite
const EnvPrefix = "XDOORIA"

// InventoryConfig 背包配置
type InventoryConfig struct {
	// Slots 背包格子数
	Slots int `mapstructure:"slots" validate:"min=1"`
}

// Config 会话的完整配置
type Config struct {
	Log        logger.Config          `mapstructure:"log"`
	Inventory  InventoryConfig        `mapstructure:"inventory"`
	Drag       drag.Config            `mapstructure:"drag"`
	Crafting   service.CraftingConfig `mapstructure:"crafting"`
	Notify     service.NotifyConfig   `mapstructure:"notify"`
	Interact   interact.Config        `mapstructure:"interact"`
	Save       repository.Config      `mapstructure:"save"`
	GameConfig gameconfig.Config      `mapstructure:"gameconfig"`
	Metrics    metrics.Config         `mapstructure:"metrics"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Log:        *logger.DefaultConfig(),
		Inventory:  InventoryConfig{Slots: 20},
		Drag:       *drag.DefaultConfig(),
		Crafting:   *service.DefaultCraftingConfig(),
		Notify:     *service.DefaultNotifyConfig(),
		Interact:   *interact.DefaultConfig(),
		Save:       *repository.DefaultConfig(),
		GameConfig: *gameconfig.DefaultConfig(),
		Metrics:    *metrics.DefaultConfig(),
	}
}

// Validate 校验整份配置
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return errors.Wrap(err, "log")
	}
	return config.NewValidator().Validate(c)
}

// LoadConfig 读取配置文件，文件中未出现的字段保留默认值，环境变量可覆盖
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := config.Load(path, cfg, config.WithEnvPrefix(EnvPrefix)); err != nil {
		return nil, err
	}
	if err := cfg.Log.Validate(); err != nil {
		return nil, errors.Wrap(err, "log")
	}
	return cfg, nil
}
