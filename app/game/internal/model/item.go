package model

import (
	"slices"

	"github.com/google/uuid"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

// ItemID 物品类型ID（配置表主键）
type ItemID int32

// AssetRef 资源路径，空串表示未设置
type AssetRef string

// TagIngredient 可被拾取进背包的物品标签
const TagIngredient = "Ingredient"

// ItemRecord 物品配置（只读）
type ItemRecord struct {
	ID          ItemID   `json:"id"`
	Name        string   `json:"name"`
	Value       int32    `json:"value"`
	Icon        AssetRef `json:"icon"`
	WorldPrefab AssetRef `json:"worldPrefab"`
	Tags        []string `json:"tags"`
}

func (r *ItemRecord) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// NewItem 按配置创建一个新的物品实例
func (r *ItemRecord) NewItem() *Item {
	return &Item{
		InstanceID:  uuid.New(),
		ID:          r.ID,
		Name:        r.Name,
		Value:       r.Value,
		Icon:        r.Icon,
		WorldPrefab: r.WorldPrefab,
		View:        DefaultView(),
	}
}

// View 物品在界面上的表现状态，仅拖拽流程会修改
type View struct {
	Offset         Point // 相对父节点中心的偏移
	Alpha          float32
	BlocksRaycasts bool
}

func DefaultView() View {
	return View{Alpha: 1, BlocksRaycasts: true}
}

// Item 物品实例
// 同 ID 的两个实例是同一种物品的不同摆放，InstanceID 区分实例
type Item struct {
	InstanceID  uuid.UUID
	ID          ItemID
	Name        string
	Value       int32
	Icon        AssetRef
	WorldPrefab AssetRef
	View        View

	slot *Slot // 当前所在槽位，由 Slot 维护
}

// Slot 返回物品当前所在槽位，不在槽位中返回 nil
func (it *Item) Slot() *Slot {
	return it.slot
}

// Use 使用物品，目前只记录日志
func (it *Item) Use(l logger.Logger) {
	logger.OrNoop(l).Info("item used", "item", it.Name, "id", it.ID, "instance", it.InstanceID)
}
