package server

import (
	"testing"
	"time"
)

type fakeArena struct {
	w, h       int
	tiles      map[Vec2]PlayerID
	fills      [][]Vec2
	recomputes []PlayerID
	clears     []PlayerID
}

func newFakeArena(w, h int) *fakeArena {
	return &fakeArena{w: w, h: h, tiles: make(map[Vec2]PlayerID)}
}

func (a *fakeArena) Width() int                  { return a.w }
func (a *fakeArena) Height() int                 { return a.h }
func (a *fakeArena) TileValueAt(p Vec2) PlayerID { return a.tiles[p] }

func (a *fakeArena) FillPlayerSpawn(pos Vec2, id PlayerID) {
	for y := pos.Y - SpawnRadius; y <= pos.Y+SpawnRadius; y++ {
		for x := pos.X - SpawnRadius; x <= pos.X+SpawnRadius; x++ {
			a.tiles[Vec2{X: x, Y: y}] = id
		}
	}
}

func (a *fakeArena) FillTrailPolygon(vertices []Vec2, id PlayerID) {
	cp := make([]Vec2, len(vertices))
	copy(cp, vertices)
	a.fills = append(a.fills, cp)
}

func (a *fakeArena) RecomputeCapturedArea(id PlayerID) { a.recomputes = append(a.recomputes, id) }

func (a *fakeArena) ClearAllTilesOwnedBy(id PlayerID) {
	a.clears = append(a.clears, id)
	for k, v := range a.tiles {
		if v == id {
			delete(a.tiles, k)
		}
	}
}

func (a *fakeArena) OwnedTileCount(id PlayerID) int {
	n := 0
	for _, v := range a.tiles {
		if v == id {
			n++
		}
	}
	return n
}

type deathCall struct {
	p      *Player
	reveal bool
}

type hitLineCall struct {
	victim, killer *Player
}

type fakeGame struct {
	players  []*Player
	states   int
	trails   int
	deaths   []deathCall
	hitLines []hitLineCall
}

func (g *fakeGame) BroadcastPlayerState(*Player)        { g.states++ }
func (g *fakeGame) BroadcastPlayerTrailChanged(*Player) { g.trails++ }
func (g *fakeGame) BroadcastPlayerDeath(p *Player, reveal bool) {
	g.deaths = append(g.deaths, deathCall{p: p, reveal: reveal})
}
func (g *fakeGame) BroadcastHitLineEffect(victim, killer *Player) {
	g.hitLines = append(g.hitLines, hitLineCall{victim: victim, killer: killer})
}
func (g *fakeGame) PlayersOverlapping(r Rect) []*Player {
	var out []*Player
	for _, p := range g.players {
		if p.TrailBounds().Overlaps(r) {
			out = append(out, p)
		}
	}
	return out
}

type fakeConn struct {
	chunks    []Rect
	gameOvers []GameOver
	closed    int
}

func (c *fakeConn) SendViewportChunk(r Rect) { c.chunks = append(c.chunks, r) }
func (c *fakeConn) SendGameOver(g GameOver)  { c.gameOvers = append(c.gameOvers, g) }
func (c *fakeConn) Close()                   { c.closed++ }

var testTuning = Tuning{Speed: 10, ViewportHalf: 20, ChunkSize: 5}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	arena *fakeArena
	game  *fakeGame
}

func newHarness() *harness {
	return &harness{arena: newFakeArena(100, 100), game: &fakeGame{}}
}

func (h *harness) spawn(t *testing.T, id PlayerID, at Vec2, dir Direction) (*Player, *fakeConn) {
	t.Helper()
	conn := &fakeConn{}
	p := NewPlayer(PlayerOptions{
		ID:        id,
		Name:      "p",
		SkinID:    int(id) % SkinsCount,
		Spawn:     at,
		Direction: dir,
		Now:       t0,
		Tuning:    testTuning,
		Game:      h.game,
		Arena:     h.arena,
		Conn:      conn,
	})
	h.game.players = append(h.game.players, p)
	return p, conn
}

// setTrail 直接把玩家置于生成轨迹的状态
func setTrail(p *Player, pos Vec2, dir Direction, vertices ...Vec2) {
	p.trail.vertices = append([]Vec2(nil), vertices...)
	p.pos = pos
	p.dir = dir
	p.currentTile = 0
	p.trail.updateBounds(pos)
}

// moveTiles 每次恰好前进一格
func moveTiles(p *Player, now time.Time, n int) {
	for i := 0; i < n; i++ {
		p.tileProgress = 1.5
		p.Loop(now, 0)
	}
}
