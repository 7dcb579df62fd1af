package model

// Slot 单个物品槽，最多容纳一个物品
// 物品与槽位互相引用，放入新槽位时自动脱离旧槽位，保证同一实例只属于一个槽位
type Slot struct {
	index int
	item  *Item
	grid  *GridInventory
}

// NewSlot 创建不属于任何背包的独立槽位（如合成台输入/输出槽）
func NewSlot(index int) *Slot {
	return &Slot{index: index}
}

func (s *Slot) Index() int { return s.index }

func (s *Slot) Item() *Item { return s.item }

func (s *Slot) IsEmpty() bool { return s.item == nil }

// SetItem 放入物品；原占用者被移出（不再属于任何槽位），item 从其原槽位脱离
// item 为 nil 等同 Clear
func (s *Slot) SetItem(item *Item) {
	if s.item == item {
		return
	}

	if s.item != nil {
		s.item.slot = nil
		s.item = nil
	}
	if item != nil && item.slot != nil {
		prev := item.slot
		prev.item = nil
		item.slot = nil
		prev.changed()
	}

	s.item = item
	if item != nil {
		item.slot = s
	}
	s.changed()
}

// Clear 清空槽位并返回原物品
func (s *Slot) Clear() *Item {
	item := s.item
	if item == nil {
		return nil
	}
	item.slot = nil
	s.item = nil
	s.changed()
	return item
}

func (s *Slot) changed() {
	if s.grid != nil {
		s.grid.notify()
	}
}

// SwapSlots 交换两个槽位的物品，任一方可为空
func SwapSlots(a, b *Slot) {
	if a == b {
		return
	}
	ia, ib := a.item, b.item
	a.SetItem(ib)
	b.SetItem(ia)
}
