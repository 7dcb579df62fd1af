package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/metrics"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/app/game/internal/repository"
	"github.com/lk2023060901/xdooria/app/game/internal/savedata"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

var (
	// ErrNoPlayer 场景中没有玩家实体
	ErrNoPlayer = errors.New("save: player not found")
	// ErrCorruptSave 存档无法解析或与配置表不符
	ErrCorruptSave = errors.New("save: corrupt save data")
)

// SaveStore 存档读写
type SaveStore interface {
	Save(ctx context.Context, rec *savedata.Record) error
	Load(ctx context.Context) (*savedata.Record, error)
}

// SaveService 存档服务：背包 + 玩家位置
type SaveService struct {
	logger    logger.Logger
	store     SaveStore
	container model.Container
	registry  *model.Registry
	player    model.Actor
	metrics   *metrics.InventoryMetrics
}

func NewSaveService(
	l logger.Logger,
	store SaveStore,
	container model.Container,
	registry *model.Registry,
	m *metrics.InventoryMetrics,
) *SaveService {
	return &SaveService{
		logger:    logger.OrNoop(l).Named("service.save"),
		store:     store,
		container: container,
		registry:  registry,
		metrics:   m,
	}
}

// SetPlayer 绑定玩家实体，nil 表示玩家不存在
func (s *SaveService) SetPlayer(a model.Actor) {
	s.player = a
}

// Save 保存当前背包与玩家位置
func (s *SaveService) Save(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordSave("save", err == nil, time.Since(start)) }()

	if s.player == nil {
		s.logger.Error("save skipped: player not found")
		return ErrNoPlayer
	}

	rec := savedata.Capture(s.container, s.player.Position())
	if err := s.store.Save(ctx, rec); err != nil {
		s.logger.Error("failed to write save", "error", err)
		return errors.Wrap(err, "write save")
	}

	s.logger.Info("game saved",
		"items", len(rec.InventorySaveData),
		"position", rec.PlayerPosition,
	)
	return nil
}

// Load 读取存档并恢复背包与玩家位置
// 没有存档时立即保存一份当前状态并返回 found=false
// 存档损坏返回 ErrCorruptSave，背包与玩家位置保持不变
func (s *SaveService) Load(ctx context.Context) (found bool, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordSave("load", err == nil, time.Since(start)) }()

	if s.player == nil {
		s.logger.Error("load skipped: player not found")
		return false, ErrNoPlayer
	}

	rec, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Info("no save found, writing initial save")
		return false, s.Save(ctx)
	case errors.Is(err, repository.ErrCorrupt):
		s.logger.Error("save data corrupt", "error", err)
		return false, errors.Join(ErrCorruptSave, err)
	case err != nil:
		s.logger.Error("failed to read save", "error", err)
		return false, errors.Wrap(err, "read save")
	}

	if err := s.container.ImportSnapshot(rec.Snapshot(), s.registry); err != nil {
		s.logger.Error("save data rejected by inventory", "error", err)
		if errors.Is(err, model.ErrInvalidSnapshot) {
			return false, errors.Join(ErrCorruptSave, err)
		}
		return false, err
	}
	s.player.SetPosition(rec.PlayerPosition)

	s.logger.Info("game loaded",
		"items", s.container.Len(),
		"position", rec.PlayerPosition,
	)
	return true, nil
}
