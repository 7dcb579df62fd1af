package drag

// Config 拖拽配置
type Config struct {
	// DragAlpha 拖拽中物品的透明度
	DragAlpha float32 `mapstructure:"drag_alpha" validate:"gt=0,lte=1"`
	// WorldDrop 是否允许拖出面板丢到场景中；关闭时面板外松手等同回退
	WorldDrop bool `mapstructure:"world_drop"`
	// 丢弃位置距离玩家的范围，在 XY 平面上随机取方向
	MinDropDistance float32 `mapstructure:"min_drop_distance" validate:"gte=0"`
	MaxDropDistance float32 `mapstructure:"max_drop_distance" validate:"gtefield=MinDropDistance"`
}

func DefaultConfig() *Config {
	return &Config{
		DragAlpha:       0.6,
		WorldDrop:       true,
		MinDropDistance: 2,
		MaxDropDistance: 3,
	}
}
