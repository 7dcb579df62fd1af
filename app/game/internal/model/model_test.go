package model

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(
		ItemRecord{ID: 1, Name: "Flour", Value: 2, Icon: "icons/flour.png", WorldPrefab: "prefabs/flour", Tags: []string{TagIngredient}},
		ItemRecord{ID: 2, Name: "Egg", Value: 3, Icon: "icons/egg.png", WorldPrefab: "prefabs/egg", Tags: []string{TagIngredient}},
		ItemRecord{ID: 7, Name: "Straße", Value: 9, Icon: "icons/street.png"},
	)
	require.NoError(t, err)
	return reg
}

func mustItem(t *testing.T, reg *Registry, id ItemID) *Item {
	t.Helper()
	it, err := reg.NewItem(id)
	require.NoError(t, err)
	return it
}

func TestRegistry(t *testing.T) {
	reg := testRegistry(t)
	assert.Equal(t, 3, reg.Len())

	rec, ok := reg.LookupName("fLOUR")
	require.True(t, ok)
	assert.Equal(t, ItemID(1), rec.ID)
	assert.True(t, rec.HasTag(TagIngredient))

	rec, ok = reg.LookupName("STRASSE")
	require.True(t, ok)
	assert.Equal(t, ItemID(7), rec.ID)

	_, err := reg.NewItem(99)
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = NewRegistry(ItemRecord{ID: 1}, ItemRecord{ID: 1})
	assert.ErrorIs(t, err, ErrDuplicateItem)

	var nilReg *Registry
	_, ok = nilReg.Lookup(1)
	assert.False(t, ok)
}

func TestNewItemInstancesAreDistinct(t *testing.T) {
	reg := testRegistry(t)
	a, b := mustItem(t, reg, 1), mustItem(t, reg, 1)
	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.InstanceID, b.InstanceID)
	assert.Equal(t, float32(1), a.View.Alpha)
	assert.True(t, a.View.BlocksRaycasts)
}

func TestSlotExclusiveOwnership(t *testing.T) {
	reg := testRegistry(t)
	a, b := mustItem(t, reg, 1), mustItem(t, reg, 2)
	s1, s2 := NewSlot(0), NewSlot(1)

	s1.SetItem(a)
	assert.Same(t, s1, a.Slot())

	// 放入另一个槽位时自动脱离原槽位
	s2.SetItem(a)
	assert.True(t, s1.IsEmpty())
	assert.Same(t, a, s2.Item())

	// 覆盖占用者：原占用者不再属于任何槽位
	s2.SetItem(b)
	assert.Nil(t, a.Slot())
	assert.Same(t, s2, b.Slot())

	assert.Same(t, b, s2.Clear())
	assert.Nil(t, b.Slot())
	assert.Nil(t, s2.Clear())
}

func TestSwapSlots(t *testing.T) {
	reg := testRegistry(t)
	a, b := mustItem(t, reg, 1), mustItem(t, reg, 2)
	s1, s2 := NewSlot(0), NewSlot(1)
	s1.SetItem(a)
	s2.SetItem(b)

	SwapSlots(s1, s2)
	assert.Same(t, b, s1.Item())
	assert.Same(t, a, s2.Item())

	SwapSlots(s1, s2)
	assert.Same(t, a, s1.Item())
	assert.Same(t, b, s2.Item())

	s2.Clear()
	SwapSlots(s1, s2)
	assert.True(t, s1.IsEmpty())
	assert.Same(t, s2, a.Slot())
}

func TestCapacityOneContainers(t *testing.T) {
	reg := testRegistry(t)
	containers := map[string]Container{
		"list": NewListInventory(1),
		"grid": NewGridInventory(1),
	}

	for name, c := range containers {
		t.Run(name, func(t *testing.T) {
			a, b := mustItem(t, reg, 1), mustItem(t, reg, 2)
			assert.True(t, c.AddItem(a))
			assert.False(t, c.AddItem(b))
			assert.Equal(t, []*Item{a}, c.Items())
			assert.Equal(t, 1, c.Len())
		})
	}
}

func TestContainerRejectsDuplicates(t *testing.T) {
	reg := testRegistry(t)
	for name, c := range map[string]Container{"list": NewListInventory(0), "grid": NewGridInventory(4)} {
		t.Run(name, func(t *testing.T) {
			a := mustItem(t, reg, 1)
			require.True(t, c.AddItem(a))
			assert.False(t, c.AddItem(a))
			assert.False(t, c.AddItem(nil))
			assert.Equal(t, 1, c.Len())

			assert.True(t, c.RemoveItem(a))
			assert.False(t, c.RemoveItem(a))
			assert.Zero(t, c.Len())
		})
	}
}

func TestListRejectsSlottedItem(t *testing.T) {
	reg := testRegistry(t)
	l := NewListInventory(0)
	g := NewGridInventory(1)
	a := mustItem(t, reg, 1)
	require.True(t, g.AddItem(a))

	assert.False(t, l.AddItem(a))
	assert.Zero(t, l.Len())
	assert.Same(t, g.Slot(0), a.Slot())

	loose := NewSlot(0)
	b := mustItem(t, reg, 2)
	loose.SetItem(b)
	assert.False(t, l.AddItem(b))

	loose.Clear()
	assert.True(t, l.AddItem(b))
}

func TestGridMoveSwapExpand(t *testing.T) {
	reg := testRegistry(t)
	g := NewGridInventory(3)
	a, b := mustItem(t, reg, 1), mustItem(t, reg, 2)
	require.True(t, g.AddItem(a))
	require.True(t, g.AddItem(b))

	require.NoError(t, g.Move(0, 2))
	assert.Same(t, a, g.Slot(2).Item())
	assert.True(t, g.Slot(0).IsEmpty())

	assert.ErrorIs(t, g.Move(0, 1), ErrSlotEmpty)
	assert.ErrorIs(t, g.Move(1, 2), ErrSlotOccupied)
	assert.ErrorIs(t, g.Move(1, 5), ErrSlotOutOfRange)

	require.NoError(t, g.Swap(1, 2))
	assert.Same(t, a, g.Slot(1).Item())
	assert.Same(t, b, g.Slot(2).Item())

	assert.False(t, g.IsFull())
	require.True(t, g.AddItem(mustItem(t, reg, 7)))
	assert.True(t, g.IsFull())

	g.Expand(2)
	assert.Equal(t, 5, g.Capacity())
	assert.Equal(t, 3, g.FindEmptySlot())
	assert.Nil(t, g.Slot(5))
}

func TestGridObserversBatch(t *testing.T) {
	reg := testRegistry(t)
	g := NewGridInventory(2)
	calls := 0
	g.OnChanged(func() { calls++ })

	a, b := mustItem(t, reg, 1), mustItem(t, reg, 2)
	g.AddItem(a)
	g.AddItem(b)
	assert.Equal(t, 2, calls)

	require.NoError(t, g.Swap(0, 1))
	assert.Equal(t, 3, calls)

	// 槽位被外部直接修改也会通知
	g.Slot(0).Clear()
	assert.Equal(t, 4, calls)
}

func TestGridOwnershipProperty(t *testing.T) {
	reg := testRegistry(t)
	rng := rand.New(rand.NewSource(42))
	g := NewGridInventory(6)
	outside := []*Slot{NewSlot(0), NewSlot(1)}
	ids := []ItemID{1, 2, 7}

	for step := 0; step < 2000; step++ {
		switch rng.Intn(5) {
		case 0:
			g.AddItem(mustItem(t, reg, ids[rng.Intn(len(ids))]))
		case 1:
			if items := g.Items(); len(items) > 0 {
				g.RemoveItem(items[rng.Intn(len(items))])
			}
		case 2:
			_ = g.Swap(rng.Intn(6), rng.Intn(6))
		case 3:
			_ = g.Move(rng.Intn(6), rng.Intn(6))
		case 4:
			// 与独立槽位之间搬运
			src := g.Slot(rng.Intn(6))
			dst := outside[rng.Intn(len(outside))]
			if rng.Intn(2) == 0 {
				src, dst = dst, src
			}
			if it := src.Item(); it != nil {
				SwapSlots(src, dst)
			}
		}

		seen := map[*Item]*Slot{}
		all := append(g.Slots(), outside...)
		nonEmpty := 0
		for _, s := range all {
			it := s.Item()
			if it == nil {
				continue
			}
			_, dup := seen[it]
			require.False(t, dup, "item owned by two slots at step %d", step)
			require.Same(t, s, it.Slot())
			seen[it] = s
		}
		for _, s := range g.Slots() {
			if !s.IsEmpty() {
				nonEmpty++
			}
		}
		require.Equal(t, nonEmpty, g.Len())
		require.Len(t, g.Items(), nonEmpty)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	reg := testRegistry(t)

	t.Run("grid keeps slot positions", func(t *testing.T) {
		g := NewGridInventory(4)
		g.Slot(3).SetItem(mustItem(t, reg, 2))
		g.Slot(1).SetItem(mustItem(t, reg, 1))
		snap := g.ExportSnapshot()
		assert.Equal(t, Snapshot{
			{SlotIndex: 1, ID: 1, Name: "Flour", Value: 2, Icon: "icons/flour.png", WorldPrefab: "prefabs/flour"},
			{SlotIndex: 3, ID: 2, Name: "Egg", Value: 3, Icon: "icons/egg.png", WorldPrefab: "prefabs/egg"},
		}, snap)

		restored := NewGridInventory(4)
		restored.AddItem(mustItem(t, reg, 7))
		require.NoError(t, restored.ImportSnapshot(snap, reg))
		assert.Equal(t, snap, restored.ExportSnapshot())
		assert.Equal(t, AssetRef("icons/egg.png"), restored.Slot(3).Item().Icon)
		assert.True(t, restored.Slot(0).IsEmpty())
	})

	t.Run("list keeps order", func(t *testing.T) {
		l := NewListInventory(0)
		l.AddItem(mustItem(t, reg, 2))
		l.AddItem(mustItem(t, reg, 1))
		snap := l.ExportSnapshot()
		assert.Equal(t, NoSlot, snap[0].SlotIndex)

		restored := NewListInventory(0)
		require.NoError(t, restored.ImportSnapshot(snap, reg))
		assert.Equal(t, snap, restored.ExportSnapshot())
		assert.Equal(t, AssetRef("prefabs/flour"), restored.Items()[1].WorldPrefab)
	})
}

func TestImportSnapshotIsAtomic(t *testing.T) {
	reg := testRegistry(t)
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"unknown id", Snapshot{{SlotIndex: 0, ID: 1, Name: "Flour"}, {SlotIndex: 1, ID: 99, Name: "?"}}},
		{"slot out of range", Snapshot{{SlotIndex: 2, ID: 1, Name: "Flour"}}},
		{"negative slot", Snapshot{{SlotIndex: NoSlot, ID: 1, Name: "Flour"}}},
		{"duplicate slot", Snapshot{{SlotIndex: 0, ID: 1}, {SlotIndex: 0, ID: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGridInventory(2)
			keep := mustItem(t, reg, 7)
			g.AddItem(keep)
			calls := 0
			g.OnChanged(func() { calls++ })

			err := g.ImportSnapshot(tt.snap, reg)
			require.ErrorIs(t, err, ErrInvalidSnapshot)
			assert.Equal(t, []*Item{keep}, g.Items())
			assert.Zero(t, calls)
		})
	}

	l := NewListInventory(1)
	err := l.ImportSnapshot(Snapshot{{ID: 1}, {ID: 2}}, reg)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestRecipeJSONDefaults(t *testing.T) {
	var recipes []Recipe
	require.NoError(t, json.Unmarshal([]byte(`[
		{"name":"dough","matchName":"Flour","outputName":"Dough","outputIcon":"icons/dough.png"},
		{"name":"paste","matchId":7,"outputId":3,"outputPrefab":"prefabs/paste"}
	]`), &recipes))

	require.Len(t, recipes, 2)
	assert.Equal(t, NoID, recipes[0].MatchID)
	assert.Equal(t, NoID, recipes[0].OutputID)
	assert.True(t, recipes[0].HasOutput())
	assert.Equal(t, int32(7), recipes[1].MatchID)
	assert.Equal(t, int32(3), recipes[1].OutputID)

	assert.False(t, (&Recipe{OutputName: "nothing", OutputID: NoID}).HasOutput())
	assert.True(t, (&Recipe{OutputID: 3}).HasOutput())
}

func TestRect(t *testing.T) {
	r := Rect{Min: Point{0, 0}, Max: Point{100, 50}}
	assert.True(t, r.Contains(Point{100, 50}))
	assert.True(t, r.Contains(Point{10, 10}))
	assert.False(t, r.Contains(Point{101, 10}))
	assert.False(t, r.Contains(Point{10, -1}))
}

func TestImportUnregisteredItem(t *testing.T) {
	reg := testRegistry(t)
	g := NewGridInventory(2)
	snap := Snapshot{{SlotIndex: 1, ID: ItemID(NoID), Name: "ResultItem"}}

	require.NoError(t, g.ImportSnapshot(snap, reg))
	it := g.Slot(1).Item()
	require.NotNil(t, it)
	assert.Equal(t, "ResultItem", it.Name)
	assert.Empty(t, it.Icon)
}

func TestImportKeepsSavedAssets(t *testing.T) {
	reg := testRegistry(t)
	g := NewGridInventory(3)
	snap := Snapshot{
		// 未登记的合成产物
		{SlotIndex: 0, ID: ItemID(NoID), Name: "Dough", Icon: "icons/dough.png", WorldPrefab: "prefabs/dough"},
		// 配方覆盖了配置表图标
		{SlotIndex: 1, ID: 1, Name: "Flour", Value: 2, Icon: "icons/flour_gold.png"},
		// 老存档没有图标字段，回退到配置表
		{SlotIndex: 2, ID: 2, Name: "Egg", Value: 3},
	}

	require.NoError(t, g.ImportSnapshot(snap, reg))
	assert.Equal(t, AssetRef("icons/dough.png"), g.Slot(0).Item().Icon)
	assert.Equal(t, AssetRef("prefabs/dough"), g.Slot(0).Item().WorldPrefab)
	assert.Equal(t, AssetRef("icons/flour_gold.png"), g.Slot(1).Item().Icon)
	assert.Equal(t, AssetRef("prefabs/flour"), g.Slot(1).Item().WorldPrefab)
	assert.Equal(t, AssetRef("icons/egg.png"), g.Slot(2).Item().Icon)

	out := g.ExportSnapshot()
	assert.Equal(t, AssetRef("icons/flour_gold.png"), out[1].Icon)
	assert.Equal(t, AssetRef("prefabs/egg"), out[2].WorldPrefab)
}
