// Package session 组装背包、拖拽、合成与存档，供宿主每帧驱动
package session

import (
	"context"
	"time"

	"github.com/lk2023060901/xdooria/app/game/internal/drag"
	"github.com/lk2023060901/xdooria/app/game/internal/gameconfig"
	"github.com/lk2023060901/xdooria/app/game/internal/interact"
	"github.com/lk2023060901/xdooria/app/game/internal/metrics"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/app/game/internal/service"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

// Key 宿主转发的按键
type Key int

const (
	KeyActivate Key = iota // 合成台激活键
	KeyInteract            // 交互键
	KeyEscape              // 关闭面板
)

// World 宿主提供的外部协作者，均可为 nil
type World struct {
	Player  interact.Body
	Panel   drag.Panel
	Spawner drag.WorldSpawner
}

// PlayerRef 当前玩家实体，可在运行时替换
type PlayerRef struct {
	body interact.Body
}

func NewPlayerRef(world World) *PlayerRef {
	return &PlayerRef{body: world.Player}
}

func (p *PlayerRef) Get() interact.Body { return p.body }

// Anchor 场景丢弃的锚点，玩家缺失时返回 false
func (p *PlayerRef) Anchor() (model.Vector3, bool) {
	if p.body == nil {
		return model.Vector3{}, false
	}
	return p.body.Position(), true
}

// Session 一个玩家的背包会话
type Session struct {
	cfg     *Config
	logger  logger.Logger
	metrics *metrics.InventoryMetrics
	cleanup func()

	tables    *gameconfig.Tables
	inventory *model.GridInventory
	player    *PlayerRef
	transfer  *drag.Transfer
	station   *service.CraftingStation
	notify    *service.NotifyService
	hub       *service.NotifyHub
	pickup    *service.PickupService
	saves     *service.SaveService

	interactables []*interact.Interactable
	stationActive bool
}

func newSession(
	cfg *Config,
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
	s := &Session{
		cfg:           cfg,
		logger:        l.Named("session"),
		metrics:       m,
		tables:        tables,
		inventory:     inventory,
		player:        player,
		transfer:      transfer,
		station:       station,
		notify:        notify,
		hub:           hub,
		pickup:        pickup,
		saves:         saves,
		stationActive: true,
	}

	transfer.OnOutcome(func(o drag.Outcome) { m.RecordDrag(o.String()) })
	station.OnCraft(func(r service.CraftResult) { m.RecordCraft(r.Status.String()) })
	inventory.OnChanged(func() { m.SetInventoryItems(inventory.Len()) })
	m.SetInventoryItems(inventory.Len())
	return s
}

// New 按配置创建会话
func New(cfg *Config, world World) (*Session, error) {
	s, cleanup, err := InitSession(cfg, world)
	if err != nil {
		return nil, err
	}
	s.cleanup = cleanup
	return s, nil
}

// Close 关闭存档后端并刷新日志
func (s *Session) Close() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

func (s *Session) Logger() logger.Logger { return s.logger }

func (s *Session) Metrics() *metrics.InventoryMetrics { return s.metrics }

func (s *Session) Tables() *gameconfig.Tables { return s.tables }

func (s *Session) Inventory() *model.GridInventory { return s.inventory }

func (s *Session) Station() *service.CraftingStation { return s.station }

func (s *Session) Notifications() *service.NotifyService { return s.notify }

func (s *Session) Transfer() *drag.Transfer { return s.transfer }

func (s *Session) Player() interact.Body { return s.player.Get() }

// SetPlayer 替换玩家实体（场景切换后重新绑定）
func (s *Session) SetPlayer(b interact.Body) {
	s.player.body = b
	s.saves.SetPlayer(b)
}

// StationActive 合成台是否响应激活键
func (s *Session) StationActive() bool { return s.stationActive }

// AddInteractable 注册场景中的可交互物；cfg 为 nil 时使用会话配置
// 合成模式的交互物接管合成台的启用状态，交互前合成台不响应激活键
func (s *Session) AddInteractable(name string, pos model.Vector3, cfg *interact.Config, opts ...interact.Option) (*interact.Interactable, error) {
	if cfg == nil {
		c := s.cfg.Interact
		cfg = &c
	}
	if cfg.Mode == interact.ModeCraftingSlotsOnly {
		opts = append(opts, interact.WithCraftingPanel(interact.ToggleFunc(func(active bool) {
			s.stationActive = active
		})))
		s.stationActive = false
	}

	it, err := interact.New(name, pos, cfg, s.logger, opts...)
	if err != nil {
		return nil, err
	}
	s.interactables = append(s.interactables, it)
	return it, nil
}

// HandleKey 处理一次按键，返回是否被消费
func (s *Session) HandleKey(k Key) bool {
	switch k {
	case KeyActivate:
		if !s.stationActive {
			return false
		}
		res := s.station.Activate()
		return res.Status != service.CraftSkipped
	case KeyInteract:
		for _, it := range s.interactables {
			if it.PressInteract() {
				return true
			}
		}
	case KeyEscape:
		for _, it := range s.interactables {
			if it.PressEscape() {
				return true
			}
		}
	}
	return false
}

// Update 每帧调用：推进提示淡出、刷新朝向、自动合成
func (s *Session) Update(dt time.Duration) {
	s.notify.Tick(dt)
	for _, it := range s.interactables {
		it.Update()
	}
	if s.stationActive {
		s.station.Update()
	}
}

// BeginDrag 开始拖拽
func (s *Session) BeginDrag(item *model.Item) error {
	return s.transfer.Begin(item)
}

// DragMove 拖拽中指针移动
func (s *Session) DragMove(pointer model.Point) {
	s.transfer.Track(pointer)
}

// EndDrag 松手并结算
func (s *Session) EndDrag(pointer model.Point, under drag.Element) drag.Outcome {
	return s.transfer.End(pointer, under)
}

// Collect 拾取场景物品，返回 true 时宿主应销毁场景物体
func (s *Session) Collect(item *model.Item, tags []string) bool {
	ok := s.pickup.Collect(item, tags)
	s.metrics.RecordPickup(ok)
	return ok
}

// CollectByID 按配置表 ID 拾取
func (s *Session) CollectByID(id model.ItemID) (*model.Item, bool, error) {
	item, ok, err := s.pickup.CollectByID(id)
	if err == nil {
		s.metrics.RecordPickup(ok)
	}
	return item, ok, err
}

// Save 存档
func (s *Session) Save(ctx context.Context) error {
	return s.saves.Save(ctx)
}

// Load 读档，没有存档时写入初始存档
func (s *Session) Load(ctx context.Context) (bool, error) {
	return s.saves.Load(ctx)
}
