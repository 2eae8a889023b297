package server

// intent 客户端上报的转向意图：期望在 desired 处转为 dir
type intent struct {
	dir     Direction
	desired Vec2
}

type intentVerdict int

const (
	intentRejected intentVerdict = iota
	intentAccepted
)

// SubmitIntent 入队并立即尝试消费。返回本次被接受与丢弃的意图数。
func (p *Player) SubmitIntent(dir Direction, desired Vec2) (accepted, rejected int) {
	if p.death != nil || p.disconnected || !dir.Valid() {
		return 0, 1
	}
	p.queue = append(p.queue, intent{dir: dir, desired: desired})
	return p.drainQueue()
}

// drainQueue 从队首开始校验；接受后继续，被接受的意图可能让后续意图变得合法
func (p *Player) drainQueue() (accepted, rejected int) {
	for len(p.queue) > 0 {
		it := p.queue[0]
		p.queue = p.queue[1:]
		if p.validate(it) == intentRejected {
			rejected++
			continue
		}
		accepted++
		p.pos = it.desired
		if p.trail.generating() {
			p.trail.add(p.pos)
		}
		p.trail.updateBounds(p.pos)
		p.dir = it.dir
		p.game.BroadcastPlayerState(p)
	}
	p.queue = nil
	return accepted, rejected
}

// validate 同轴（含同向、反向）拒绝；进入暂停总是接受；
// 垂直转向要求期望位置与当前位置对齐。暂停不属于任何轴，从暂停出发不做对齐检查。
func (p *Player) validate(it intent) intentVerdict {
	if it.dir.SameAxis(p.dir) {
		return intentRejected
	}
	if it.dir == DirPaused {
		return intentAccepted
	}
	if p.dir.Horizontal() && it.desired.X != p.pos.X {
		return intentRejected
	}
	if p.dir.Vertical() && it.desired.Y != p.pos.Y {
		return intentRejected
	}
	return intentAccepted
}

// QueueLen 队列中尚未处理的意图数
func (p *Player) QueueLen() int { return len(p.queue) }
