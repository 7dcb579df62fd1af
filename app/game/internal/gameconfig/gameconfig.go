// Package gameconfig 加载物品表与配方表
package gameconfig

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/pkg/config"
	cfgtable "github.com/lk2023060901/xdooria/pkg/gameconfig"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

// Config 配置表路径
type Config struct {
	DataDir      string `mapstructure:"data_dir" validate:"required"`
	ItemsTable   string `mapstructure:"items_table" validate:"required"`
	RecipesTable string `mapstructure:"recipes_table" validate:"required"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:      "data",
		ItemsTable:   "items",
		RecipesTable: "recipes",
	}
}

// Tables 已加载的配置
type Tables struct {
	Registry *model.Registry
	// Recipes 按文件顺序，顺序即匹配优先级
	Recipes []model.Recipe
}

// Load 读取物品表与配方表；缺失的表按空表处理
func Load(cfg *Config, l logger.Logger) (*Tables, error) {
	newCfg, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge gameconfig config")
	}
	if err := config.NewValidator().Validate(newCfg); err != nil {
		return nil, err
	}

	log := logger.OrNoop(l).Named("gameconfig")
	load, err := cfgtable.NewFileLoader(newCfg.DataDir, log)
	if err != nil {
		return nil, err
	}
	return LoadFrom(load, newCfg, log)
}

// LoadFrom 使用任意 Loader 加载
func LoadFrom(load cfgtable.Loader, cfg *Config, l logger.Logger) (*Tables, error) {
	log := logger.OrNoop(l)

	items, err := cfgtable.LoadTable[model.ItemRecord](load, cfg.ItemsTable)
	if err != nil {
		return nil, err
	}
	registry, err := model.NewRegistry(items...)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", cfg.ItemsTable)
	}

	recipes, err := cfgtable.LoadTable[model.Recipe](load, cfg.RecipesTable)
	if err != nil {
		return nil, err
	}
	kept := recipes[:0]
	for i, r := range recipes {
		if r.OutputID >= 0 {
			if _, ok := registry.Lookup(model.ItemID(r.OutputID)); !ok {
				// 只声明了 outputId 的配方无法产出任何东西
				if r.OutputIcon == "" && r.OutputPrefab == "" {
					log.Error("recipe output id not in item table, recipe dropped",
						"recipe", r.Name, "index", i, "output_id", r.OutputID)
					continue
				}
				log.Warn("recipe output id not in item table", "recipe", r.Name, "output_id", r.OutputID)
			}
		}
		if !r.HasOutput() {
			log.Warn("recipe has no output and will never match", "recipe", r.Name, "index", i)
		}
		if r.MatchIcon == "" && r.MatchName == "" && r.MatchID < 0 {
			log.Warn("recipe has no match condition and will never match", "recipe", r.Name, "index", i)
		}
		kept = append(kept, r)
	}

	log.Info("game config loaded", "items", registry.Len(), "recipes", len(kept))
	return &Tables{Registry: registry, Recipes: kept}, nil
}
