package server

// Vec2 网格整数坐标
type Vec2 struct {
	X int `msgpack:"x" json:"x"`
	Y int `msgpack:"y" json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Rect 轴对齐矩形，Min/Max 两端均包含
type Rect struct {
	Min Vec2 `msgpack:"min" json:"min"`
	Max Vec2 `msgpack:"max" json:"max"`
}

// PointRect 退化为单点的矩形
func PointRect(p Vec2) Rect { return Rect{Min: p, Max: p} }

// Contains 点是否落在矩形内（含边界）
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps 两个矩形是否相交（含边界接触）
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && r.Max.X >= o.Min.X &&
		r.Min.Y <= o.Max.Y && r.Max.Y >= o.Min.Y
}

// Expand 把点并入矩形
func (r Rect) Expand(p Vec2) Rect {
	if p.X < r.Min.X {
		r.Min.X = p.X
	}
	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	}
	if p.X > r.Max.X {
		r.Max.X = p.X
	}
	if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}
	return r
}

// Grow 四周各扩展 n 格
func (r Rect) Grow(n int) Rect {
	return Rect{Min: Vec2{X: r.Min.X - n, Y: r.Min.Y - n}, Max: Vec2{X: r.Max.X + n, Y: r.Max.Y + n}}
}

// Clip 裁剪到 [0,w) x [0,h)；若无交集第二个返回值为 false
func (r Rect) Clip(w, h int) (Rect, bool) {
	if r.Min.X < 0 {
		r.Min.X = 0
	}
	if r.Min.Y < 0 {
		r.Min.Y = 0
	}
	if r.Max.X > w-1 {
		r.Max.X = w - 1
	}
	if r.Max.Y > h-1 {
		r.Max.Y = h - 1
	}
	return r, r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y
}

// PointOnSegment 判断点 p 是否位于线段 a-b 上。
// 轨迹线段总是水平或竖直的；斜线段只在端点处命中。
func PointOnSegment(p, a, b Vec2) bool {
	switch {
	case a.X == b.X:
		return p.X == a.X && p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
	case a.Y == b.Y:
		return p.Y == a.Y && p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X)
	default:
		return p == a || p == b
	}
}
