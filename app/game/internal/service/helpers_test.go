package service

import (
	"testing"

	"github.com/lk2023060901/xdooria/app/game/internal/model"
	"github.com/lk2023060901/xdooria/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testRegistry(t *testing.T) *model.Registry {
	t.Helper()
	reg, err := model.NewRegistry(
		model.ItemRecord{ID: 1, Name: "Flour", Value: 2, Icon: "icons/flour.png", WorldPrefab: "prefabs/flour", Tags: []string{model.TagIngredient}},
		model.ItemRecord{ID: 2, Name: "Egg", Value: 3, Icon: "icons/egg.png", WorldPrefab: "prefabs/egg", Tags: []string{model.TagIngredient}},
		model.ItemRecord{ID: 7, Name: "Flour", Value: 1, Icon: "icons/flour-alt.png"},
		model.ItemRecord{ID: 10, Name: "Bread", Value: 20, Icon: "icons/bread.png", WorldPrefab: "prefabs/bread"},
		model.ItemRecord{ID: 11, Name: "Rock", Value: 0, Icon: "icons/rock.png"},
	)
	require.NoError(t, err)
	return reg
}

func newItem(t *testing.T, reg *model.Registry, id model.ItemID) *model.Item {
	t.Helper()
	it, err := reg.NewItem(id)
	require.NoError(t, err)
	return it
}

// recipe 构造配方，未设置的 ID 为 NoID
func recipe(name string, fn func(r *model.Recipe)) model.Recipe {
	r := model.Recipe{Name: name, MatchID: model.NoID, OutputID: model.NoID}
	fn(&r)
	return r
}

func observedLogger() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.NewWithCore(core), logs
}
