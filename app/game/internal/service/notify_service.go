package service

import (
	"time"

	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

// Notifier 拾取提示的接收方
type Notifier interface {
	ShowItemPickup(name string, icon model.AssetRef)
}

// NotifyConfig 拾取提示配置
type NotifyConfig struct {
	MaxPopups     int           `mapstructure:"max_popups" validate:"min=1"`
	PopupDuration time.Duration `mapstructure:"popup_duration" validate:"gte=0"`
	FadeDuration  time.Duration `mapstructure:"fade_duration" validate:"gt=0"`
}

func DefaultNotifyConfig() *NotifyConfig {
	return &NotifyConfig{
		MaxPopups:     5,
		PopupDuration: 2 * time.Second,
		FadeDuration:  time.Second,
	}
}

// Popup 一条拾取提示
type Popup struct {
	ID       uint64
	ItemName string
	Icon     model.AssetRef
	Alpha    float32
	Age      time.Duration
}

var _ Notifier = (*NotifyService)(nil)

// NotifyService 拾取提示队列，由宿主每帧调用 Tick 推进淡出
type NotifyService struct {
	cfg    *NotifyConfig
	logger logger.Logger
	popups []*Popup
	nextID uint64
}

func NewNotifyService(cfg *NotifyConfig, l logger.Logger) *NotifyService {
	if cfg == nil {
		cfg = DefaultNotifyConfig()
	}
	return &NotifyService{
		cfg:    cfg,
		logger: logger.OrNoop(l).Named("service.notify"),
	}
}

// ShowItemPickup 新增提示，超过上限时移除最早的一条
func (s *NotifyService) ShowItemPickup(name string, icon model.AssetRef) {
	s.nextID++
	s.popups = append(s.popups, &Popup{ID: s.nextID, ItemName: name, Icon: icon, Alpha: 1})
	if over := len(s.popups) - s.cfg.MaxPopups; over > 0 {
		s.popups = s.popups[over:]
	}
	s.logger.Debug("pickup popup shown", "item", name, "active", len(s.popups))
}

// Tick 推进 dt：存活 PopupDuration 后在 FadeDuration 内透明度 1 → 0，随后移除
func (s *NotifyService) Tick(dt time.Duration) {
	if len(s.popups) == 0 {
		return
	}

	alive := s.popups[:0]
	for _, p := range s.popups {
		p.Age += dt
		fade := p.Age - s.cfg.PopupDuration
		switch {
		case fade <= 0:
			p.Alpha = 1
		case fade >= s.cfg.FadeDuration:
			continue
		default:
			p.Alpha = 1 - float32(fade)/float32(s.cfg.FadeDuration)
		}
		alive = append(alive, p)
	}
	clear(s.popups[len(alive):])
	s.popups = alive
}

// Popups 当前提示的副本，最早的在前
func (s *NotifyService) Popups() []Popup {
	out := make([]Popup, len(s.popups))
	for i, p := range s.popups {
		out[i] = *p
	}
	return out
}

// NotifyHub 会话内唯一的提示出口，重复挂载的 Notifier 被丢弃
type NotifyHub struct {
	logger logger.Logger
	active Notifier
}

func NewNotifyHub(l logger.Logger) *NotifyHub {
	return &NotifyHub{logger: logger.OrNoop(l).Named("service.notify")}
}

// Attach 挂载 Notifier；已有不同的 Notifier 时记录错误并拒绝
func (h *NotifyHub) Attach(n Notifier) bool {
	if n == nil {
		return false
	}
	if h.active != nil && h.active != n {
		h.logger.Error("multiple item pickup notifiers, discarding duplicate")
		return false
	}
	h.active = n
	return true
}

func (h *NotifyHub) Active() Notifier { return h.active }

func (h *NotifyHub) ShowItemPickup(name string, icon model.AssetRef) {
	if h.active == nil {
		return
	}
	h.active.ShowItemPickup(name, icon)
}
