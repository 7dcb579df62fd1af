package drag

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
)

var (
	ErrNotInSlot      = errors.New("drag: item is not in a slot")
	ErrDragInProgress = errors.New("drag: another drag is in progress")
)

// State 拖拽状态
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResolving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Outcome 一次拖拽的结算结果
type Outcome int

const (
	OutcomeNone         Outcome = iota // 没有进行中的拖拽
	OutcomeMoved                       // 放入空槽位
	OutcomeSwapped                     // 与目标槽位交换
	OutcomeReverted                    // 回到原槽位
	OutcomeWorldDropped                // 丢到场景中
	OutcomeDropAborted                 // 场景丢弃失败，已回到原槽位
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeSwapped:
		return "swapped"
	case OutcomeReverted:
		return "reverted"
	case OutcomeWorldDropped:
		return "world_dropped"
	case OutcomeDropAborted:
		return "drop_aborted"
	default:
		return "none"
	}
}

// Panel 背包面板，用于判断指针是否在面板内
type Panel interface {
	Bounds() model.Rect
}

// AnchorLocator 查找带 Player 标签实体的位置
type AnchorLocator interface {
	Anchor() (model.Vector3, bool)
}

// WorldSpawner 在场景中生成物品的世界表现
type WorldSpawner interface {
	Spawn(item *model.Item, pos model.Vector3) error
}

// PanelFunc 函数式 Panel
type PanelFunc func() model.Rect

func (f PanelFunc) Bounds() model.Rect { return f() }

// ActorAnchor 以 Actor 的位置作为锚点，Actor 为 nil 时视为缺失
type ActorAnchor struct {
	Actor model.Actor
}

func (a ActorAnchor) Anchor() (model.Vector3, bool) {
	if a.Actor == nil {
		return model.Vector3{}, false
	}
	return a.Actor.Position(), true
}
