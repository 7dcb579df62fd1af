package interact

// 交互模式
const (
	ModeOpenPanel         = "open_panel"
	ModeCraftingSlotsOnly = "crafting_slots_only"
)

// 玩家朝向轴
const (
	AxisRight = "right"
	AxisUp    = "up"
)

// Config 可交互物配置
type Config struct {
	// Mode open_panel 打开面板；crafting_slots_only 只启用合成槽
	Mode string `mapstructure:"mode" validate:"required,oneof=open_panel crafting_slots_only"`
	// FacingAngle 判定“面向”的最大夹角（度）
	FacingAngle float64 `mapstructure:"facing_angle" validate:"gte=0,lte=180"`
	// FacingAxis 玩家正面取 right 轴还是 up 轴
	FacingAxis string `mapstructure:"facing_axis" validate:"required,oneof=right up"`
	// Distance 交互半径，由宿主的范围触发器使用
	Distance float64 `mapstructure:"distance" validate:"gt=0"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeOpenPanel,
		FacingAngle: 60,
		FacingAxis:  AxisRight,
		Distance:    3,
	}
}
