package service

import (
	"github.com/lk2023060901/xdooria/app/game/internal/model"
)

// RecipeMatcher 配方匹配器
// 按表顺序取第一个命中的配方；每个配方只比较第一个已设置的匹配字段（图标 → 名称 → ID）
type RecipeMatcher struct {
	recipes []model.Recipe
	folded  []string // 预先归一化的 MatchName
}

// NewRecipeMatcher 创建匹配器，表顺序即优先级
func NewRecipeMatcher(recipes []model.Recipe) *RecipeMatcher {
	m := &RecipeMatcher{
		recipes: make([]model.Recipe, len(recipes)),
		folded:  make([]string, len(recipes)),
	}
	copy(m.recipes, recipes)
	for i := range m.recipes {
		if name := m.recipes[i].MatchName; name != "" {
			m.folded[i] = model.FoldName(name)
		}
	}
	return m
}

// Recipes 返回配方表副本
func (m *RecipeMatcher) Recipes() []model.Recipe {
	out := make([]model.Recipe, len(m.recipes))
	copy(out, m.recipes)
	return out
}

// Match 返回第一个匹配且声明了输出的配方
func (m *RecipeMatcher) Match(item *model.Item) (*model.Recipe, bool) {
	if item == nil {
		return nil, false
	}

	var name string
	for i := range m.recipes {
		r := &m.recipes[i]
		if !r.HasOutput() {
			continue
		}

		switch {
		case r.MatchIcon != "":
			if item.Icon != r.MatchIcon {
				continue
			}
		case r.MatchName != "":
			if name == "" {
				name = model.FoldName(item.Name)
			}
			if name != m.folded[i] {
				continue
			}
		case r.MatchID >= 0:
			if int32(item.ID) != r.MatchID {
				continue
			}
		default:
			continue
		}

		out := *r
		return &out, true
	}
	return nil, false
}

// MatchRecipe 对任意配方表做一次匹配
func MatchRecipe(item *model.Item, recipes []model.Recipe) (*model.Recipe, bool) {
	return NewRecipeMatcher(recipes).Match(item)
}
