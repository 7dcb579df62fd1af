package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/drag"
	"github.com/lk2023060901/xdooria/app/game/internal/interact"
	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/app/game/internal/service"
	"github.com/lk2023060901/xdooria/app/game/internal/savedata"
	"github.com/lk2023060901/xdooria/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsJSON = `[
  {"id": 1, "name": "Flour", "value": 2, "icon": "icons/flour.png", "worldPrefab": "prefabs/flour", "tags": ["Ingredient"]},
  {"id": 2, "name": "Rock", "value": 0, "icon": "icons/rock.png"},
  {"id": 10, "name": "Dough", "value": 5, "icon": "icons/dough.png", "worldPrefab": "prefabs/dough"}
]`

const recipesJSON = `[
  {"name": "Dough", "matchName": "Flour", "outputId": 10, "outputIcon": "icons/dough.png"}
]`

type player struct {
	pos model.Vector3
	rot float32
}

func (p *player) Position() model.Vector3     { return p.pos }
func (p *player) SetPosition(v model.Vector3) { p.pos = v }
func (p *player) Rotation() float32           { return p.rot }

type spawned struct {
	item *model.Item
	pos  model.Vector3
}

type spawner struct {
	calls []spawned
	err   error
}

func (s *spawner) Spawn(item *model.Item, pos model.Vector3) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, spawned{item, pos})
	return nil
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(data, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "items.json"), []byte(itemsJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(data, "recipes.json"), []byte(recipesJSON), 0o644))

	cfg := DefaultConfig()
	cfg.Log.Level = logger.ErrorLevel
	cfg.Inventory.Slots = 4
	cfg.GameConfig.DataDir = data
	cfg.Save.DataDir = dir
	return cfg
}

func panel() drag.Panel {
	return drag.PanelFunc(func() model.Rect {
		return model.Rect{Min: model.Point{}, Max: model.Point{X: 100, Y: 100}}
	})
}

func newTestSession(t *testing.T, cfg *Config, world World) *Session {
	t.Helper()
	s, err := New(cfg, world)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSessionFlow(t *testing.T) {
	ctx := context.Background()
	p := &player{pos: model.Vector3{X: 1, Y: 2}}
	sp := &spawner{}
	s := newTestSession(t, testConfig(t), World{Player: p, Panel: panel(), Spawner: sp})
	m := s.Metrics()

	// 拾取
	flour, ok, err := s.CollectByID(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, s.Inventory().Len())
	require.Len(t, s.Notifications().Popups(), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Pickups.WithLabelValues("collected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InventoryItems))

	rock, ok, err := s.CollectByID(2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, rock.Slot())

	// 拖进合成台输入槽
	input := drag.NewSlotNode("input", s.Station().Input(), nil)
	require.NoError(t, s.BeginDrag(flour))
	s.DragMove(model.Point{X: 40, Y: 40})
	assert.Equal(t, drag.OutcomeMoved, s.EndDrag(model.Point{X: 40, Y: 40}, drag.NewNode("icon", input)))
	assert.Equal(t, 0, s.Inventory().Len())
	assert.Same(t, flour, s.Station().Input().Item())

	// 合成
	assert.True(t, s.HandleKey(KeyActivate))
	dough := s.Station().Output().Item()
	require.NotNil(t, dough)
	assert.Equal(t, "Dough", dough.Name)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Crafts.WithLabelValues("recipe")))

	// 成品拖回背包第 3 格
	require.NoError(t, s.BeginDrag(dough))
	assert.Equal(t, drag.OutcomeMoved, s.EndDrag(model.Point{X: 10, Y: 10}, drag.NewSlotNode("slot3", s.Inventory().Slot(3), nil)))
	assert.Same(t, dough, s.Inventory().Slot(3).Item())

	// 存档
	require.NoError(t, s.Save(ctx))
	assert.FileExists(t, filepath.Join(s.cfg.Save.DataDir, savedata.FileName))

	// 拖出面板丢到场景
	require.NoError(t, s.BeginDrag(dough))
	assert.Equal(t, drag.OutcomeWorldDropped, s.EndDrag(model.Point{X: 500, Y: 500}, nil))
	require.Len(t, sp.calls, 1)
	assert.Same(t, dough, sp.calls[0].item)
	assert.Equal(t, float32(0), sp.calls[0].pos.Z)
	assert.Equal(t, 0, s.Inventory().Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DragOutcomes.WithLabelValues("moved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DragOutcomes.WithLabelValues("world_dropped")))

	// 读档恢复背包与位置
	p.pos = model.Vector3{X: 50}
	found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	restored := s.Inventory().Slot(3).Item()
	require.NotNil(t, restored)
	assert.Equal(t, "Dough", restored.Name)
	assert.Equal(t, model.AssetRef("icons/dough.png"), restored.Icon)
	assert.Equal(t, model.Vector3{X: 1, Y: 2}, p.pos)
}

func TestSessionStationInteractable(t *testing.T) {
	p := &player{}
	s := newTestSession(t, testConfig(t), World{Player: p, Panel: panel()})
	assert.True(t, s.StationActive())

	oven, err := s.AddInteractable("oven", model.Vector3{X: 1}, &interact.Config{Mode: interact.ModeCraftingSlotsOnly})
	require.NoError(t, err)
	assert.False(t, s.StationActive())

	_, ok, err := s.CollectByID(1)
	require.NoError(t, err)
	require.True(t, ok)
	s.Station().Input().SetItem(s.Inventory().Slot(0).Item())

	// 合成台未启用时激活键无效
	assert.False(t, s.HandleKey(KeyActivate))
	assert.False(t, s.HandleKey(KeyInteract))

	oven.EnterRange(s.Player())
	assert.True(t, s.HandleKey(KeyInteract))
	assert.True(t, s.StationActive())
	assert.True(t, s.HandleKey(KeyActivate))
	assert.Equal(t, "Dough", s.Station().Output().Item().Name)

	// 空输入时激活被跳过
	s.Station().Input().Clear()
	assert.False(t, s.HandleKey(KeyActivate))
}

func TestSessionPanelInteractable(t *testing.T) {
	p := &player{rot: 90}
	s := newTestSession(t, testConfig(t), World{Player: p})

	open := false
	chest, err := s.AddInteractable("chest", model.Vector3{Y: 2}, nil,
		interact.WithPanel(interact.ToggleFunc(func(active bool) { open = active })))
	require.NoError(t, err)
	assert.True(t, s.StationActive())

	chest.EnterRange(s.Player())
	s.Update(16 * time.Millisecond)
	assert.True(t, chest.Facing())

	assert.True(t, s.HandleKey(KeyInteract))
	assert.True(t, open)
	assert.True(t, s.HandleKey(KeyEscape))
	assert.False(t, open)
	assert.False(t, s.HandleKey(KeyEscape))
}

func TestSessionAutoDisplay(t *testing.T) {
	cfg := testConfig(t)
	cfg.Crafting.AutoDisplay = true
	s := newTestSession(t, cfg, World{Player: &player{}})

	flour, ok, err := s.CollectByID(1)
	require.NoError(t, err)
	require.True(t, ok)
	s.Station().Input().SetItem(flour)

	s.Update(time.Second)
	require.NotNil(t, s.Station().Output().Item())
	assert.Equal(t, "Dough", s.Station().Output().Item().Name)

	// 提示在 Update 中淡出
	s.Update(5 * time.Second)
	assert.Empty(t, s.Notifications().Popups())
}

func TestSessionWithoutPlayer(t *testing.T) {
	ctx := context.Background()
	sp := &spawner{}
	s := newTestSession(t, testConfig(t), World{Panel: panel(), Spawner: sp})

	assert.ErrorIs(t, s.Save(ctx), service.ErrNoPlayer)
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, service.ErrNoPlayer)

	// 玩家缺失时场景丢弃中止，物品回到原槽位
	flour, ok, err := s.CollectByID(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.BeginDrag(flour))
	assert.Equal(t, drag.OutcomeDropAborted, s.EndDrag(model.Point{X: -5, Y: -5}, nil))
	assert.Same(t, flour, s.Inventory().Slot(0).Item())
	assert.Empty(t, sp.calls)

	p := &player{pos: model.Vector3{Z: 3}}
	s.SetPlayer(p)
	found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
	assert.FileExists(t, filepath.Join(s.cfg.Save.DataDir, savedata.FileName))
}

func TestSessionSpawnFailure(t *testing.T) {
	sp := &spawner{err: errors.New("prefab missing")}
	s := newTestSession(t, testConfig(t), World{Player: &player{}, Panel: panel(), Spawner: sp})

	flour, _, err := s.CollectByID(1)
	require.NoError(t, err)
	require.NoError(t, s.BeginDrag(flour))
	assert.Equal(t, drag.OutcomeDropAborted, s.EndDrag(model.Point{X: 200}, nil))
	assert.Same(t, flour, s.Inventory().Slot(0).Item())
	assert.Equal(t, float32(1), flour.View.Alpha)
	assert.True(t, flour.View.BlocksRaycasts)
	// 生成失败记一条 error 日志
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().LogEntries.WithLabelValues("error")))
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Inventory.Slots = 0
	_, err := New(cfg, World{})
	assert.Error(t, err)

	_, err = New(nil, World{})
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.Save.Backend = "floppy"
	_, err = New(cfg, World{})
	assert.Error(t, err)
}
