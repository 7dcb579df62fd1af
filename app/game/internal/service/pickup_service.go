package service

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

// PickupService 玩家触碰场景物品时的收集逻辑
type PickupService struct {
	logger    logger.Logger
	container model.Container
	registry  *model.Registry
	notifier  Notifier
}

func NewPickupService(l logger.Logger, container model.Container, registry *model.Registry, notifier Notifier) *PickupService {
	return &PickupService{
		logger:    logger.OrNoop(l).Named("service.pickup"),
		container: container,
		registry:  registry,
		notifier:  notifier,
	}
}

// Collect 只收集带 Ingredient 标签的物品
// 返回 true 表示已放入背包，宿主应销毁场景物体；false 时保留
func (s *PickupService) Collect(item *model.Item, tags []string) bool {
	if item == nil || !slices.Contains(tags, model.TagIngredient) {
		return false
	}
	if !s.container.AddItem(item) {
		s.logger.Info("pickup rejected: inventory full", "item", item.Name)
		return false
	}

	if s.notifier != nil {
		s.notifier.ShowItemPickup(item.Name, item.Icon)
	}
	s.logger.Info("item collected", "item", item.Name, "total", s.container.Len())
	return true
}

// CollectByID 按配置创建实例并收集，标签取自配置表
func (s *PickupService) CollectByID(id model.ItemID) (*model.Item, bool, error) {
	rec, ok := s.registry.Lookup(id)
	if !ok {
		return nil, false, errors.Wrapf(model.ErrUnknownItem, "id %d", id)
	}
	item := rec.NewItem()
	return item, s.Collect(item, rec.Tags), nil
}
