package server

// Direction 移动方向；数值即线上编码
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
	DirPaused
)

func (d Direction) Valid() bool { return d >= DirRight && d <= DirPaused }

func (d Direction) Horizontal() bool { return d == DirRight || d == DirLeft }

func (d Direction) Vertical() bool { return d == DirUp || d == DirDown }

// SameAxis 两个方向是否在同一轴上（含相同方向）。暂停不属于任何轴，
// 但暂停与暂停视为相同方向。
func (d Direction) SameAxis(o Direction) bool {
	if d == o {
		return true
	}
	return (d.Horizontal() && o.Horizontal()) || (d.Vertical() && o.Vertical())
}

// Delta 单位步进向量；暂停为零向量
func (d Direction) Delta() Vec2 {
	switch d {
	case DirRight:
		return Vec2{X: 1}
	case DirDown:
		return Vec2{Y: 1}
	case DirLeft:
		return Vec2{X: -1}
	case DirUp:
		return Vec2{Y: -1}
	}
	return Vec2{}
}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirPaused:
		return "paused"
	}
	return "invalid"
}
