package drag

import (
	"math"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

// Transfer 单个指针手势的拖拽状态机：Idle → Dragging → Resolving → Idle
// 拖拽期间源槽位仍持有物品，结算时才修改槽位
type Transfer struct {
	cfg     *Config
	logger  logger.Logger
	panel   Panel
	anchor  AnchorLocator
	spawner WorldSpawner
	offset  func() model.Vector3
	hooks   []func(Outcome)

	state  State
	item   *model.Item
	source *model.Slot
	saved  model.View
}

// Option Transfer 选项
type Option func(*Transfer)

// WithWorld 设置场景丢弃所需的锚点与生成器
func WithWorld(anchor AnchorLocator, spawner WorldSpawner) Option {
	return func(t *Transfer) {
		t.anchor = anchor
		t.spawner = spawner
	}
}

// WithDropOffset 替换丢弃位置偏移的计算
func WithDropOffset(fn func() model.Vector3) Option {
	return func(t *Transfer) { t.offset = fn }
}

// NewTransfer 创建拖拽状态机
func NewTransfer(cfg *Config, panel Panel, l logger.Logger, opts ...Option) *Transfer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	t := &Transfer{
		cfg:    cfg,
		logger: logger.OrNoop(l).Named("drag.transfer"),
		panel:  panel,
	}
	t.offset = t.randomOffset
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnOutcome 注册结算回调
func (t *Transfer) OnOutcome(fn func(Outcome)) {
	if fn != nil {
		t.hooks = append(t.hooks, fn)
	}
}

func (t *Transfer) State() State { return t.state }

// Item 进行中拖拽的物品，Idle 时为 nil
func (t *Transfer) Item() *model.Item { return t.item }

func (t *Transfer) Source() *model.Slot { return t.source }

// Begin 开始拖拽：记录源槽位，物品不再拦截射线并降低透明度
func (t *Transfer) Begin(item *model.Item) error {
	if t.state != StateIdle {
		return ErrDragInProgress
	}
	if item == nil || item.Slot() == nil {
		return ErrNotInSlot
	}

	t.item = item
	t.source = item.Slot()
	t.saved = item.View
	item.View.BlocksRaycasts = false
	item.View.Alpha = t.cfg.DragAlpha
	t.state = StateDragging

	t.logger.Debug("drag begin", "item", item.Name, "slot", t.source.Index())
	return nil
}

// Track 物品跟随指针，不修改任何槽位
func (t *Transfer) Track(pointer model.Point) {
	if t.state != StateDragging {
		return
	}
	t.item.View.Offset = pointer
}

// End 松手结算，under 为指针下最上层的界面节点（可为 nil）
func (t *Transfer) End(pointer model.Point, under Element) Outcome {
	if t.state != StateDragging {
		return OutcomeNone
	}
	t.state = StateResolving
	outcome := t.resolve(pointer, under)
	t.finish(outcome)
	return outcome
}

// Cancel 放弃进行中的拖拽，物品回到源槽位
func (t *Transfer) Cancel() Outcome {
	if t.state != StateDragging {
		return OutcomeNone
	}
	t.state = StateResolving
	t.finish(OutcomeReverted)
	return OutcomeReverted
}

func (t *Transfer) resolve(pointer model.Point, under Element) Outcome {
	item, source := t.item, t.source

	// 拖拽期间物品被其他流程移走（如合成消耗），不再落位
	if item.Slot() != source {
		t.logger.Warn("dragged item left its source slot during drag", "item", item.Name)
		return OutcomeDropAborted
	}

	if target := FindSlot(under); target != nil {
		switch {
		case target == source:
			return OutcomeReverted
		case target.IsEmpty():
			target.SetItem(item)
			return OutcomeMoved
		default:
			occupant := target.Item()
			model.SwapSlots(source, target)
			occupant.View.Offset = model.Point{}
			return OutcomeSwapped
		}
	}

	if t.panel == nil || t.panel.Bounds().Contains(pointer) || !t.cfg.WorldDrop {
		return OutcomeReverted
	}
	return t.dropToWorld(item, source)
}

func (t *Transfer) dropToWorld(item *model.Item, source *model.Slot) Outcome {
	var (
		pos model.Vector3
		ok  bool
	)
	if t.anchor != nil {
		pos, ok = t.anchor.Anchor()
	}
	if !ok {
		t.logger.Warn("world drop aborted: player anchor not found", "item", item.Name)
		return OutcomeDropAborted
	}
	if t.spawner == nil {
		t.logger.Warn("world drop aborted: no world spawner", "item", item.Name)
		return OutcomeDropAborted
	}

	at := pos.Add(t.offset())
	if err := t.spawner.Spawn(item, at); err != nil {
		t.logger.Error("world drop aborted: spawn failed",
			"item", item.Name, "prefab", item.WorldPrefab, "error", errors.Wrap(err, "spawn"))
		return OutcomeDropAborted
	}

	source.Clear()
	t.logger.Info("item dropped to world", "item", item.Name, "x", at.X, "y", at.Y, "z", at.Z)
	return OutcomeWorldDropped
}

// finish 恢复透明度与射线拦截并在最终父节点中居中，回到 Idle
func (t *Transfer) finish(outcome Outcome) {
	t.item.View = t.saved
	t.item.View.Offset = model.Point{}

	t.logger.Debug("drag end", "item", t.item.Name, "outcome", outcome.String())
	t.item, t.source = nil, nil
	t.saved = model.View{}
	t.state = StateIdle

	for _, fn := range t.hooks {
		fn(outcome)
	}
}

// randomOffset 在 XY 平面上随机方向，距离在 [MinDropDistance, MaxDropDistance] 内
func (t *Transfer) randomOffset() model.Vector3 {
	angle := rand.Float64() * 2 * math.Pi
	dist := float64(t.cfg.MinDropDistance) + rand.Float64()*float64(t.cfg.MaxDropDistance-t.cfg.MinDropDistance)
	return model.Vector3{
		X: float32(math.Cos(angle) * dist),
		Y: float32(math.Sin(angle) * dist),
	}
}
