package model

// Container 背包容器（列表式 / 格子式）
type Container interface {
	// AddItem 添加物品，容量不足或物品已在容器中返回 false，失败时不修改状态
	AddItem(item *Item) bool
	RemoveItem(item *Item) bool
	// Items 按列表顺序或槽位顺序返回物品
	Items() []*Item
	Len() int
	// Capacity 容量，0 表示不限
	Capacity() int
	Contains(item *Item) bool

	ExportSnapshot() Snapshot
	// ImportSnapshot 用快照整体替换当前内容；校验失败返回 ErrInvalidSnapshot 且不修改状态
	ImportSnapshot(snap Snapshot, reg *Registry) error

	OnChanged(fn func())
}

// observers 变更通知，batch 期间的多次变更合并为一次通知
type observers struct {
	fns   []func()
	depth int
	dirty bool
}

func (o *observers) OnChanged(fn func()) {
	if fn != nil {
		o.fns = append(o.fns, fn)
	}
}

func (o *observers) notify() {
	if o.depth > 0 {
		o.dirty = true
		return
	}
	for _, fn := range o.fns {
		fn()
	}
}

func (o *observers) batch(fn func()) {
	o.depth++
	fn()
	o.depth--
	if o.depth == 0 && o.dirty {
		o.dirty = false
		o.notify()
	}
}
