package session

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/dao"
	"github.com/lk2023060901/xdooria/app/game/internal/drag"
	"github.com/lk2023060901/xdooria/app/game/internal/gameconfig"
	"github.com/lk2023060901/xdooria/app/game/internal/metrics"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/app/game/internal/repository"
	"github.com/lk2023060901/xdooria/app/game/internal/service"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

// provideValidConfig 校验配置
func provideValidConfig(cfg *Config) (*validConfig, error) {
	if cfg == nil {
		return nil, errors.New("session: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &validConfig{cfg}, nil
}

// validConfig 通过校验的配置，其余 provider 只依赖它
type validConfig struct {
	*Config
}

// provideMetrics 提供指标
func provideMetrics(cfg *validConfig) (*metrics.InventoryMetrics, error) {
	return metrics.New(&cfg.Metrics)
}

// provideLogger 提供日志，按等级计数到指标
func provideLogger(cfg *validConfig, m *metrics.InventoryMetrics) (logger.Logger, func(), error) {
	l, err := logger.New(&cfg.Log, logger.WithHooks(logger.LevelHook(m.RecordLog)))
	if err != nil {
		return nil, nil, err
	}
	return l, func() { _ = l.Sync() }, nil
}

// provideTables 提供物品表与配方表
func provideTables(cfg *validConfig, l logger.Logger) (*gameconfig.Tables, error) {
	return gameconfig.Load(&cfg.GameConfig, l)
}

// provideInventory 提供背包
func provideInventory(cfg *validConfig) *model.GridInventory {
	return model.NewGridInventory(cfg.Inventory.Slots)
}

// provideTransfer 提供拖拽状态机
func provideTransfer(cfg *validConfig, world World, player *PlayerRef, l logger.Logger) *drag.Transfer {
	var opts []drag.Option
	if world.Spawner != nil {
		opts = append(opts, drag.WithWorld(player, world.Spawner))
	}
	return drag.NewTransfer(&cfg.Drag, world.Panel, l, opts...)
}

// provideStation 提供合成台，输入/输出槽不属于背包
func provideStation(cfg *validConfig, l logger.Logger, tables *gameconfig.Tables) *service.CraftingStation {
	matcher := service.NewRecipeMatcher(tables.Recipes)
	return service.NewCraftingStation(&cfg.Crafting, l, matcher, tables.Registry, model.NewSlot(0), model.NewSlot(1))
}

// provideNotify 提供拾取提示
func provideNotify(cfg *validConfig, l logger.Logger) *service.NotifyService {
	return service.NewNotifyService(&cfg.Notify, l)
}

// provideHub 提供提示出口并挂载默认提示队列
func provideHub(l logger.Logger, notify *service.NotifyService) *service.NotifyHub {
	hub := service.NewNotifyHub(l)
	hub.Attach(notify)
	return hub
}

// providePickup 提供拾取服务
func providePickup(l logger.Logger, inventory *model.GridInventory, tables *gameconfig.Tables, hub *service.NotifyHub) *service.PickupService {
	return service.NewPickupService(l, inventory, tables.Registry, hub)
}

// provideSaveDAO 按配置打开存档后端
func provideSaveDAO(cfg *validConfig, l logger.Logger, m *metrics.InventoryMetrics) (dao.SaveDAO, func(), error) {
	d, err := repository.OpenDAO(context.Background(), &cfg.Save, l, m)
	if err != nil {
		return nil, nil, err
	}
	return d, func() { _ = d.Close() }, nil
}

// provideRepository 提供存档仓储
func provideRepository(cfg *validConfig, d dao.SaveDAO, l logger.Logger) (*repository.SaveRepository, error) {
	return repository.NewSaveRepository(&cfg.Save, d, l)
}

// provideSaveService 提供存档服务
func provideSaveService(
	l logger.Logger,
	repo *repository.SaveRepository,
	inventory *model.GridInventory,
	tables *gameconfig.Tables,
	m *metrics.InventoryMetrics,
	player *PlayerRef,
) *service.SaveService {
	svc := service.NewSaveService(l, repo, inventory, tables.Registry, m)
	svc.SetPlayer(player.Get())
	return svc
}

// provideSession 组装会话
func provideSession(
	cfg *validConfig,
	l logger.Logger,
	m *metrics.InventoryMetrics,
	tables *gameconfig.Tables,
	inventory *model.GridInventory,
	player *PlayerRef,
	transfer *drag.Transfer,
	station *service.CraftingStation,
	notify *service.NotifyService,
	hub *service.NotifyHub,
	pickup *service.PickupService,
	saves *service.SaveService,
) *Session {
	return newSession(cfg.Config, l, m, tables, inventory, player, transfer, station, notify, hub, pickup, saves)
}
