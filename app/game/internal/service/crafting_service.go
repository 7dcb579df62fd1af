package service

import (
	"github.com/google/uuid"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

// CraftingConfig 合成台配置
type CraftingConfig struct {
	// UseSourceIcon 未命中配方时复制输入物品的图标
	UseSourceIcon bool `mapstructure:"use_source_icon"`
	// DefaultIcon/DefaultPrefab 未命中配方时的默认输出
	DefaultIcon   model.AssetRef `mapstructure:"default_icon"`
	DefaultPrefab model.AssetRef `mapstructure:"default_prefab"`
	// ReplaceOutput 输出槽已有物品时是否覆盖
	ReplaceOutput bool `mapstructure:"replace_output"`
	// ConsumeInput 合成后销毁输入物品
	ConsumeInput bool `mapstructure:"consume_input"`
	// AutoDisplay 输入槽物品变化时自动合成
	AutoDisplay bool `mapstructure:"auto_display"`
}

func DefaultCraftingConfig() *CraftingConfig {
	return &CraftingConfig{
		UseSourceIcon: true,
		ReplaceOutput: true,
	}
}

// CraftStatus 合成结果类型
type CraftStatus int

const (
	CraftSkipped CraftStatus = iota
	CraftedFromRecipe
	CraftedFallback
)

func (s CraftStatus) String() string {
	switch s {
	case CraftedFromRecipe:
		return "recipe"
	case CraftedFallback:
		return "fallback"
	default:
		return "skipped"
	}
}

// CraftResult 一次合成的结果
type CraftResult struct {
	Status   CraftStatus
	Reason   string        // 跳过原因
	Recipe   *model.Recipe // 命中的配方
	Output   *model.Item
	Replaced *model.Item // 被覆盖销毁的原输出
	Consumed *model.Item // 被消耗的输入
}

// FallbackItemName 未命中配方且使用默认输出时的物品名
const FallbackItemName = "ResultItem"

// CraftingStation 合成台：输入槽 + 输出槽 + 配方表
type CraftingStation struct {
	cfg      *CraftingConfig
	logger   logger.Logger
	matcher  *RecipeMatcher
	registry *model.Registry

	input  *model.Slot
	output *model.Slot

	lastInput uuid.UUID
	hooks     []func(CraftResult)
}

func NewCraftingStation(
	cfg *CraftingConfig,
	l logger.Logger,
	matcher *RecipeMatcher,
	registry *model.Registry,
	input, output *model.Slot,
) *CraftingStation {
	if cfg == nil {
		cfg = DefaultCraftingConfig()
	}
	if matcher == nil {
		matcher = NewRecipeMatcher(nil)
	}
	return &CraftingStation{
		cfg:      cfg,
		logger:   logger.OrNoop(l).Named("service.crafting"),
		matcher:  matcher,
		registry: registry,
		input:    input,
		output:   output,
	}
}

func (s *CraftingStation) Input() *model.Slot { return s.input }

func (s *CraftingStation) Output() *model.Slot { return s.output }

// OnCraft 注册合成回调（包括跳过）
func (s *CraftingStation) OnCraft(fn func(CraftResult)) {
	if fn != nil {
		s.hooks = append(s.hooks, fn)
	}
}

// Activate 执行一次合成
func (s *CraftingStation) Activate() CraftResult {
	res := s.activate()
	for _, fn := range s.hooks {
		fn(res)
	}
	return res
}

func (s *CraftingStation) activate() CraftResult {
	if s.input == nil || s.output == nil {
		s.logger.Warn("crafting skipped: slots not assigned")
		return CraftResult{Reason: "slots not assigned"}
	}

	src := s.input.Item()
	if src == nil {
		s.logger.Info("crafting skipped: no ingredient in input slot")
		return CraftResult{Reason: "input empty"}
	}
	if !s.output.IsEmpty() && !s.cfg.ReplaceOutput {
		s.logger.Info("crafting skipped: output slot occupied and replace is disabled")
		return CraftResult{Reason: "output occupied"}
	}

	res := CraftResult{}
	if recipe, ok := s.matcher.Match(src); ok {
		res.Status = CraftedFromRecipe
		res.Recipe = recipe
		res.Output = s.fromRecipe(recipe)
	} else {
		out := s.fallback(src)
		if out == nil {
			s.logger.Warn("crafting skipped: no icon available to display", "input", src.Name)
			return CraftResult{Reason: "no output"}
		}
		res.Status = CraftedFallback
		res.Output = out
	}

	res.Replaced = s.output.Clear()
	s.output.SetItem(res.Output)
	if s.cfg.ConsumeInput {
		res.Consumed = s.input.Clear()
	}

	s.logger.Info("crafted",
		"input", src.Name,
		"output", res.Output.Name,
		"mode", res.Status.String(),
		"consumed", res.Consumed != nil,
	)
	return res
}

// fromRecipe 优先使用配置表中的输出物品，配方上的图标/预制体覆盖配置表
func (s *CraftingStation) fromRecipe(r *model.Recipe) *model.Item {
	var it *model.Item
	if r.OutputID >= 0 {
		if rec, ok := s.registry.Lookup(model.ItemID(r.OutputID)); ok {
			it = rec.NewItem()
		}
	}
	if it == nil {
		name := r.OutputName
		if name == "" {
			name = r.Name
		}
		it = &model.Item{
			InstanceID: uuid.New(),
			ID:         model.ItemID(model.NoID),
			Name:       name,
			View:       model.DefaultView(),
		}
	}
	if r.OutputIcon != "" {
		it.Icon = r.OutputIcon
	}
	if r.OutputPrefab != "" {
		it.WorldPrefab = r.OutputPrefab
	}
	return it
}

// fallback 未命中配方：复制输入图标或使用默认图标，没有可用图标返回 nil
func (s *CraftingStation) fallback(src *model.Item) *model.Item {
	if s.cfg.UseSourceIcon && src.Icon != "" {
		return &model.Item{
			InstanceID:  uuid.New(),
			ID:          src.ID,
			Name:        src.Name,
			Value:       src.Value,
			Icon:        src.Icon,
			WorldPrefab: firstRef(s.cfg.DefaultPrefab, src.WorldPrefab),
			View:        model.DefaultView(),
		}
	}
	if s.cfg.UseSourceIcon {
		s.logger.Warn("input item has no icon, falling back to default icon", "input", src.Name)
	}
	if s.cfg.DefaultIcon == "" {
		return nil
	}
	return &model.Item{
		InstanceID:  uuid.New(),
		ID:          model.ItemID(model.NoID),
		Name:        FallbackItemName,
		Icon:        s.cfg.DefaultIcon,
		WorldPrefab: s.cfg.DefaultPrefab,
		View:        model.DefaultView(),
	}
}

// Update 每帧调用；开启 AutoDisplay 时，输入槽物品每变化一次触发一次合成
func (s *CraftingStation) Update() (CraftResult, bool) {
	if !s.cfg.AutoDisplay || s.input == nil {
		return CraftResult{}, false
	}

	var current uuid.UUID
	if it := s.input.Item(); it != nil {
		current = it.InstanceID
	}
	if current == s.lastInput {
		return CraftResult{}, false
	}
	s.lastInput = current
	if current == uuid.Nil {
		return CraftResult{}, false
	}
	return s.Activate(), true
}

func firstRef(refs ...model.AssetRef) model.AssetRef {
	for _, r := range refs {
		if r != "" {
			return r
		}
	}
	return ""
}
