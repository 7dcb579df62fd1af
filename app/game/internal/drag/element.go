package drag

import "github.com/lk2023060901/xdooria/app/game/internal/model"

// Element 指针下的界面节点
type Element interface {
	Parent() Element
}

// SlotElement 承载槽位的界面节点
type SlotElement interface {
	Element
	Slot() *model.Slot
}

// FindSlot 从 e 开始向上查找最近的槽位节点，找不到返回 nil
func FindSlot(e Element) *model.Slot {
	for e != nil {
		if se, ok := e.(SlotElement); ok {
			if s := se.Slot(); s != nil {
				return s
			}
		}
		e = e.Parent()
	}
	return nil
}

// Node 简单的界面节点实现，宿主可直接用它搭建节点树
type Node struct {
	Name   string
	parent *Node
	slot   *model.Slot
}

// NewNode 创建普通节点
func NewNode(name string, parent *Node) *Node {
	return &Node{Name: name, parent: parent}
}

// NewSlotNode 创建承载槽位的节点
func NewSlotNode(name string, slot *model.Slot, parent *Node) *Node {
	return &Node{Name: name, parent: parent, slot: slot}
}

func (n *Node) Parent() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Slot() *model.Slot { return n.slot }
