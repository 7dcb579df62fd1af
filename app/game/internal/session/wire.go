//go:build wireinject
// +build wireinject

package session

import (
	"github.com/google/wire"
)

// InitSession 通过 Wire 组装会话
func InitSession(cfg *Config, world World) (*Session, func(), error) {
	panic(wire.Build(
		// 1. 配置与基础设施
		provideValidConfig,
		provideMetrics,
		provideLogger,

		// 2. 配置表
		provideTables,

		// 3. 领域模型
		provideInventory,
		NewPlayerRef,

		// 4. 存档：DAO → 仓储
		provideSaveDAO,
		provideRepository,

		// 5. 服务层
		provideTransfer,
		provideStation,
		provideNotify,
		provideHub,
		providePickup,
		provideSaveService,

		// 6. 组装
		provideSession,
	))
}
