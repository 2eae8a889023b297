package server

import "iter"

// trail 玩家正在生成的轨迹及其包围盒。
// 不变量：vertices 为空 <=> 不在生成轨迹。
type trail struct {
	vertices []Vec2
	bounds   Rect
}

func (t *trail) generating() bool { return len(t.vertices) > 0 }

func (t *trail) add(p Vec2) { t.vertices = append(t.vertices, p) }

func (t *trail) last(id PlayerID) Vec2 {
	if len(t.vertices) == 0 {
		invariant(id, "trail.last", "trail is empty")
	}
	return t.vertices[len(t.vertices)-1]
}

// reset 清空轨迹，返回原顶点（所有权转交调用方）
func (t *trail) reset() []Vec2 {
	v := t.vertices
	t.vertices = nil
	return v
}

// updateBounds 生成中：所有顶点与当前位置的最小包围盒；否则退化为当前位置
func (t *trail) updateBounds(pos Vec2) {
	b := PointRect(pos)
	for _, v := range t.vertices {
		b = b.Expand(v)
	}
	t.bounds = b
}

// snapshot 顶点副本
func (t *trail) snapshot() []Vec2 {
	if len(t.vertices) == 0 {
		return nil
	}
	out := make([]Vec2, len(t.vertices))
	copy(out, t.vertices)
	return out
}

// hit 判断 p 是否落在轨迹上。live 为玩家当前位置，
// includeLive 时额外检测最后一个顶点到 live 的前沿线段。
func (t *trail) hit(id PlayerID, p, live Vec2, includeLive bool) bool {
	for i := 1; i < len(t.vertices); i++ {
		if PointOnSegment(p, t.vertices[i-1], t.vertices[i]) {
			return true
		}
	}
	if includeLive {
		return PointOnSegment(p, t.last(id), live)
	}
	return false
}

// TrailVertices 每次调用返回一个独立的顶点序列，内容为调用时刻轨迹的副本
func (p *Player) TrailVertices() iter.Seq[Vec2] {
	verts := p.trail.snapshot()
	return func(yield func(Vec2) bool) {
		for _, v := range verts {
			if !yield(v) {
				return
			}
		}
	}
}

// Trail 轨迹顶点副本
func (p *Player) Trail() []Vec2 { return p.trail.snapshot() }

// TrailBounds 轨迹包围盒
func (p *Player) TrailBounds() Rect { return p.trail.bounds }

// Generating 是否正在领地外生成轨迹
func (p *Player) Generating() bool { return p.trail.generating() }
