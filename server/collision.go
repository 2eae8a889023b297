package server

import "time"

// checkArenaBounds 触碰或越过边界（含 1 格边距）即死亡，并告知客户端死亡位置
func (p *Player) checkArenaBounds(now time.Time) bool {
	w, h := p.arena.Width(), p.arena.Height()
	if p.pos.X <= 0 || p.pos.Y <= 0 || p.pos.X >= w-1 || p.pos.Y >= h-1 {
		p.die(now, DeathAreaBounds, true)
		return true
	}
	return false
}

// checkTrailCollisions 先用包围盒粗筛，再逐段精确判断。
// 被撞到轨迹的一方死亡，移动方记为击杀者。
func (p *Player) checkTrailCollisions(now time.Time) {
	for _, other := range p.game.PlayersOverlapping(PointRect(p.pos)) {
		if other.death != nil || other.disconnected {
			continue
		}
		if !other.TrailBounds().Contains(p.pos) {
			continue
		}
		if !other.hitBy(p) {
			continue
		}
		if other == p {
			p.die(now, DeathSelf, true)
		} else {
			other.killer = p.Name
			other.killerID = p.ID
			p.Kills++
			other.die(now, DeathPlayer, false)
		}
		p.game.BroadcastHitLineEffect(other, p)
	}
}

// hitBy 判断 mover 当前位置是否落在本玩家的轨迹上
func (p *Player) hitBy(mover *Player) bool {
	if !p.trail.generating() {
		if p == mover {
			return false
		}
		return mover.pos == p.pos
	}
	// 自身的前沿线段总是经过自己的当前位置，不参与自检
	return p.trail.hit(p.ID, mover.pos, p.pos, p != mover)
}
