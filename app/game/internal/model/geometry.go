package model

// Vector3 世界坐标，分量使用 float32 以保证存档逐位还原
type Vector3 struct {
	X float32 `json:"x" codec:"x"`
	Y float32 `json:"y" codec:"y"`
	Z float32 `json:"z" codec:"z"`
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Point 屏幕/面板坐标
type Point struct {
	X float32
	Y float32
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect 轴对齐矩形，Min/Max 均为闭区间
type Rect struct {
	Min Point
	Max Point
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Actor 带 Player 标签的场景实体，只暴露位置
type Actor interface {
	Position() Vector3
	SetPosition(Vector3)
}
