package server

import (
	"cmp"
	"math/rand"
	"slices"
)

// SpawnRadius 出生领地半径（5x5）
const SpawnRadius = 2

// GridArena 内存中的瓦片网格；只由房间 Tick 协程访问
type GridArena struct {
	width  int
	height int
	tiles  []PlayerID

	bounds map[PlayerID]Rect
	counts map[PlayerID]int
	rng    *rand.Rand
}

func NewGridArena(width, height int, seed int64) *GridArena {
	return &GridArena{
		width:  width,
		height: height,
		tiles:  make([]PlayerID, width*height),
		bounds: make(map[PlayerID]Rect),
		counts: make(map[PlayerID]int),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (a *GridArena) Width() int  { return a.width }
func (a *GridArena) Height() int { return a.height }

func (a *GridArena) inside(p Vec2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < a.width && p.Y < a.height
}

func (a *GridArena) TileValueAt(p Vec2) PlayerID {
	if !a.inside(p) {
		return 0
	}
	return a.tiles[p.Y*a.width+p.X]
}

func (a *GridArena) set(p Vec2, id PlayerID) {
	if a.inside(p) {
		a.tiles[p.Y*a.width+p.X] = id
	}
}

// FillPlayerSpawn 以 pos 为中心填充出生领地
func (a *GridArena) FillPlayerSpawn(pos Vec2, id PlayerID) {
	for y := pos.Y - SpawnRadius; y <= pos.Y+SpawnRadius; y++ {
		for x := pos.X - SpawnRadius; x <= pos.X+SpawnRadius; x++ {
			a.set(Vec2{X: x, Y: y}, id)
		}
	}
	a.grow(id, Rect{Min: Vec2{X: pos.X - SpawnRadius, Y: pos.Y - SpawnRadius}, Max: Vec2{X: pos.X + SpawnRadius, Y: pos.Y + SpawnRadius}})
}

func (a *GridArena) grow(id PlayerID, r Rect) {
	if b, ok := a.bounds[id]; ok {
		r = b.Expand(r.Min).Expand(r.Max)
	}
	if c, ok := r.Clip(a.width, a.height); ok {
		a.bounds[id] = c
	}
}

// FillTrailPolygon 先画出轨迹线段，再从包围盒外圈做泛洪，
// 未被泛洪到的非己方瓦片即被轨迹与领地围住，归为 id。
// 被覆盖的其他玩家立即重新统计领地。
func (a *GridArena) FillTrailPolygon(vertices []Vec2, id PlayerID) {
	if len(vertices) == 0 {
		return
	}
	displaced := make(map[PlayerID]struct{})
	r := PointRect(vertices[0])
	for i, v := range vertices {
		r = r.Expand(v)
		if i == 0 {
			a.claim(v, id, displaced)
			continue
		}
		a.paintSegment(vertices[i-1], v, id, displaced)
	}
	a.grow(id, r)

	box := a.bounds[id].Grow(1)
	a.fillEnclosed(box, id, displaced)

	for prev := range displaced {
		a.RecomputeCapturedArea(prev)
	}
}

// claim 把瓦片归为 id，并记下原主人
func (a *GridArena) claim(p Vec2, id PlayerID, displaced map[PlayerID]struct{}) {
	if prev := a.TileValueAt(p); prev != 0 && prev != id {
		displaced[prev] = struct{}{}
	}
	a.set(p, id)
}

func (a *GridArena) paintSegment(from, to Vec2, id PlayerID, displaced map[PlayerID]struct{}) {
	step := Vec2{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
	p := from
	a.claim(p, id, displaced)
	for p != to {
		p = p.Add(step)
		a.claim(p, id, displaced)
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// fillEnclosed 在 box 范围内从边框出发泛洪（box 之外视为可达）
func (a *GridArena) fillEnclosed(box Rect, id PlayerID, displaced map[PlayerID]struct{}) {
	bw := box.Max.X - box.Min.X + 1
	bh := box.Max.Y - box.Min.Y + 1
	reached := make([]bool, bw*bh)
	idx := func(p Vec2) int { return (p.Y-box.Min.Y)*bw + (p.X - box.Min.X) }

	var stack []Vec2
	push := func(p Vec2) {
		if !box.Contains(p) || reached[idx(p)] || (a.inside(p) && a.TileValueAt(p) == id) {
			return
		}
		reached[idx(p)] = true
		stack = append(stack, p)
	}
	for x := box.Min.X; x <= box.Max.X; x++ {
		push(Vec2{X: x, Y: box.Min.Y})
		push(Vec2{X: x, Y: box.Max.Y})
	}
	for y := box.Min.Y; y <= box.Max.Y; y++ {
		push(Vec2{X: box.Min.X, Y: y})
		push(Vec2{X: box.Max.X, Y: y})
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.Add(Vec2{X: 1}))
		push(p.Add(Vec2{X: -1}))
		push(p.Add(Vec2{Y: 1}))
		push(p.Add(Vec2{Y: -1}))
	}
	for y := box.Min.Y; y <= box.Max.Y; y++ {
		for x := box.Min.X; x <= box.Max.X; x++ {
			p := Vec2{X: x, Y: y}
			if a.inside(p) && !reached[idx(p)] {
				a.claim(p, id, displaced)
			}
		}
	}
}

// RecomputeCapturedArea 重新统计归属 id 的瓦片数与包围盒
func (a *GridArena) RecomputeCapturedArea(id PlayerID) {
	count := 0
	var r Rect
	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			if a.tiles[y*a.width+x] != id {
				continue
			}
			p := Vec2{X: x, Y: y}
			if count == 0 {
				r = PointRect(p)
			} else {
				r = r.Expand(p)
			}
			count++
		}
	}
	if count == 0 {
		delete(a.bounds, id)
		delete(a.counts, id)
		return
	}
	a.bounds[id] = r
	a.counts[id] = count
}

// ClearAllTilesOwnedBy 释放 id 的全部瓦片
func (a *GridArena) ClearAllTilesOwnedBy(id PlayerID) {
	for i, v := range a.tiles {
		if v == id {
			a.tiles[i] = 0
		}
	}
	delete(a.bounds, id)
	delete(a.counts, id)
}

func (a *GridArena) OwnedTileCount(id PlayerID) int { return a.counts[id] }

// FindSpawn 随机寻找一个远离边界且 5x5 全部无主的位置
func (a *GridArena) FindSpawn() (Vec2, bool) {
	margin := SpawnRadius + 2
	if a.width <= margin*2 || a.height <= margin*2 {
		return Vec2{}, false
	}
	for attempt := 0; attempt < 200; attempt++ {
		p := Vec2{
			X: margin + a.rng.Intn(a.width-margin*2),
			Y: margin + a.rng.Intn(a.height-margin*2),
		}
		if a.spawnFree(p) {
			return p, true
		}
	}
	return Vec2{}, false
}

func (a *GridArena) spawnFree(c Vec2) bool {
	for y := c.Y - SpawnRadius; y <= c.Y+SpawnRadius; y++ {
		for x := c.X - SpawnRadius; x <= c.X+SpawnRadius; x++ {
			if a.TileValueAt(Vec2{X: x, Y: y}) != 0 {
				return false
			}
		}
	}
	return true
}

// Snapshot 返回 rect 与网格交集内的瓦片（行优先）；无交集时 ok 为 false
func (a *GridArena) Snapshot(r Rect) (clipped Rect, tiles []PlayerID, ok bool) {
	clipped, ok = r.Clip(a.width, a.height)
	if !ok {
		return clipped, nil, false
	}
	tiles = make([]PlayerID, 0, (clipped.Max.X-clipped.Min.X+1)*(clipped.Max.Y-clipped.Min.Y+1))
	for y := clipped.Min.Y; y <= clipped.Max.Y; y++ {
		for x := clipped.Min.X; x <= clipped.Max.X; x++ {
			tiles = append(tiles, a.tiles[y*a.width+x])
		}
	}
	return clipped, tiles, true
}

// Leaderboard 按领地大小排序的玩家 ID（从大到小，同分按 ID 升序）
func (a *GridArena) Leaderboard() []PlayerID {
	ids := make([]PlayerID, 0, len(a.counts))
	for id := range a.counts {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(x, y PlayerID) int {
		if c := cmp.Compare(a.counts[y], a.counts[x]); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
	return ids
}
