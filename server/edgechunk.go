package server

// viewportRect 以当前位置为中心的完整视口
func (p *Player) viewportRect() Rect {
	h := p.tuning.ViewportHalf
	return Rect{
		Min: Vec2{X: p.pos.X - h, Y: p.pos.Y - h},
		Max: Vec2{X: p.pos.X + h, Y: p.pos.Y + h},
	}
}

// edgeChunks 计算本 Tick 新露出的视口边缘块，并更新各轴的最后发送位置。
// 每个方向独立判断；同一 Tick 内跨越多个阈值时返回全部矩形。
// 边缘块紧贴视口外侧，宽 c 格，沿另一轴长 2(h+c) 格（Rect 两端均包含）。
func (p *Player) edgeChunks() []Rect {
	c := p.tuning.ChunkSize
	if c <= 0 {
		return nil
	}
	h := p.tuning.ViewportHalf
	x, y := p.pos.X, p.pos.Y
	span := h + c

	var chunks []Rect
	switch {
	case x-p.lastEdgeChunkSendX >= c:
		chunks = append(chunks, Rect{Min: Vec2{X: x + h + 1, Y: y - span}, Max: Vec2{X: x + h + c, Y: y + span - 1}})
		p.lastEdgeChunkSendX = x
	case p.lastEdgeChunkSendX-x >= c:
		chunks = append(chunks, Rect{Min: Vec2{X: x - h - c, Y: y - span}, Max: Vec2{X: x - h - 1, Y: y + span - 1}})
		p.lastEdgeChunkSendX = x
	}
	switch {
	case y-p.lastEdgeChunkSendY >= c:
		chunks = append(chunks, Rect{Min: Vec2{X: x - span, Y: y + h + 1}, Max: Vec2{X: x + span - 1, Y: y + h + c}})
		p.lastEdgeChunkSendY = y
	case p.lastEdgeChunkSendY-y >= c:
		chunks = append(chunks, Rect{Min: Vec2{X: x - span, Y: y - h - c}, Max: Vec2{X: x + span - 1, Y: y - h - 1}})
		p.lastEdgeChunkSendY = y
	}
	return chunks
}

func (p *Player) updateEdgeChunks() {
	chunks := p.edgeChunks()
	if p.conn == nil {
		return
	}
	for _, r := range chunks {
		p.conn.SendViewportChunk(r)
	}
}
