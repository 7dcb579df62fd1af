// Package interact 场景中可交互物：进入范围、面向检测、按键打开面板
package interact

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/pkg/config"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

// Body 玩家实体：位置 + 绕 Z 轴的朝向（度）
type Body interface {
	model.Actor
	Rotation() float32
}

// Toggle 可显示/隐藏的界面元素
type Toggle interface {
	SetActive(active bool)
}

// ToggleFunc 函数适配 Toggle
type ToggleFunc func(active bool)

func (f ToggleFunc) SetActive(active bool) { f(active) }

type Option func(*Interactable)

// WithPanel OpenPanel 模式下打开的面板
func WithPanel(t Toggle) Option {
	return func(i *Interactable) { i.panel = t }
}

// WithCraftingPanel CraftingSlotsOnly 模式下启用的合成槽面板
func WithCraftingPanel(t Toggle) Option {
	return func(i *Interactable) { i.crafting = t }
}

// WithPrompt 面向时显示的交互提示
func WithPrompt(t Toggle) Option {
	return func(i *Interactable) { i.prompt = t }
}

// Interactable 可交互物
type Interactable struct {
	name     string
	cfg      *Config
	logger   logger.Logger
	position model.Vector3

	panel    Toggle
	crafting Toggle
	prompt   Toggle

	enabled   bool
	player    Body
	facing    bool
	panelOpen bool

	onInteract []func()
	onEnter    []func()
	onExit     []func()
}

// New 创建可交互物，初始时面板与提示均隐藏
func New(name string, position model.Vector3, cfg *Config, l logger.Logger, opts ...Option) (*Interactable, error) {
	newCfg, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge interactable config")
	}
	if err := config.NewValidator().Validate(newCfg); err != nil {
		return nil, err
	}

	i := &Interactable{
		name:     name,
		cfg:      newCfg,
		logger:   logger.OrNoop(l).Named("interact").WithFields("object", name),
		position: position,
		enabled:  true,
	}
	for _, opt := range opts {
		opt(i)
	}

	if i.prompt != nil {
		i.prompt.SetActive(false)
	} else {
		i.logger.Warn("no interact prompt assigned")
	}
	if i.panel != nil {
		i.panel.SetActive(false)
	} else if newCfg.Mode == ModeOpenPanel {
		i.logger.Warn("no panel assigned to open")
	}
	if newCfg.Mode == ModeCraftingSlotsOnly && i.crafting == nil {
		i.logger.Warn("crafting mode selected but no crafting panel assigned")
	}
	return i, nil
}

func (i *Interactable) Name() string { return i.name }

func (i *Interactable) Config() Config { return *i.cfg }

func (i *Interactable) InRange() bool { return i.player != nil }

func (i *Interactable) Facing() bool { return i.facing }

func (i *Interactable) PanelOpen() bool { return i.panelOpen }

func (i *Interactable) OnInteract(fn func()) { i.onInteract = append(i.onInteract, fn) }

func (i *Interactable) OnEnterRange(fn func()) { i.onEnter = append(i.onEnter, fn) }

func (i *Interactable) OnExitRange(fn func()) { i.onExit = append(i.onExit, fn) }

// EnterRange 玩家进入交互范围
func (i *Interactable) EnterRange(player Body) {
	if !i.enabled || player == nil {
		return
	}
	i.player = player
	i.logger.Debug("player entered interaction range")
	fire(i.onEnter)
}

// ExitRange 玩家离开范围，已打开的面板随之关闭
func (i *Interactable) ExitRange() {
	if i.player == nil {
		return
	}
	i.player = nil
	i.facing = false
	if i.prompt != nil {
		i.prompt.SetActive(false)
	}
	i.logger.Debug("player exited interaction range")
	fire(i.onExit)

	if i.panelOpen {
		i.closePanel()
	}
}

// Update 每帧刷新面向状态
func (i *Interactable) Update() {
	if !i.enabled || i.player == nil || i.panelOpen {
		return
	}

	angle := i.angleToPlayer()
	was := i.facing
	i.facing = angle <= i.cfg.FacingAngle
	if was != i.facing {
		i.logger.Debug("facing changed", "facing", i.facing, "angle", angle, "threshold", i.cfg.FacingAngle)
	}
	if i.prompt != nil {
		i.prompt.SetActive(i.facing)
	}
}

// PressInteract 交互键；仅在范围内、面向且面板未打开时生效
func (i *Interactable) PressInteract() bool {
	if !i.enabled || i.player == nil || i.panelOpen {
		return false
	}
	i.Update()
	if !i.facing {
		i.logger.Debug("interact ignored: player is not facing the object")
		return false
	}
	i.Interact()
	return true
}

// PressEscape 关闭已打开的面板
func (i *Interactable) PressEscape() bool {
	if !i.panelOpen {
		return false
	}
	i.closePanel()
	return true
}

// Interact 触发交互，不检查范围与朝向
func (i *Interactable) Interact() {
	i.logger.Info("interaction triggered", "mode", i.cfg.Mode)
	fire(i.onInteract)

	switch i.cfg.Mode {
	case ModeOpenPanel:
		if i.panel == nil {
			i.logger.Warn("no panel assigned to open")
			return
		}
		i.panel.SetActive(true)
		i.panelOpen = true
	case ModeCraftingSlotsOnly:
		if i.crafting == nil {
			i.logger.Warn("no crafting panel assigned")
			return
		}
		i.crafting.SetActive(true)
		i.logger.Info("crafting ready")
	}
}

// SetEnabled 禁用时清除范围状态并隐藏提示
func (i *Interactable) SetEnabled(enabled bool) {
	i.enabled = enabled
	if !enabled {
		i.player = nil
		i.facing = false
		if i.prompt != nil {
			i.prompt.SetActive(false)
		}
	}
	i.logger.Debug("interactable toggled", "enabled", enabled)
}

func (i *Interactable) closePanel() {
	if i.panel == nil {
		return
	}
	i.panel.SetActive(false)
	i.panelOpen = false
}

// angleToPlayer 玩家正面与“玩家→物体”方向的夹角（度），两者重合时为 0
func (i *Interactable) angleToPlayer() float64 {
	pos := i.player.Position()
	dx := float64(i.position.X - pos.X)
	dy := float64(i.position.Y - pos.Y)

	rad := float64(i.player.Rotation()) * math.Pi / 180
	fx, fy := math.Cos(rad), math.Sin(rad)
	if i.cfg.FacingAxis == AxisUp {
		fx, fy = -math.Sin(rad), math.Cos(rad)
	}

	denom := math.Hypot(dx, dy) * math.Hypot(fx, fy)
	if denom < 1e-15 {
		return 0
	}
	cos := (dx*fx + dy*fy) / denom
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

func fire(hooks []func()) {
	for _, fn := range hooks {
		fn()
	}
}
