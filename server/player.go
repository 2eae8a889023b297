package server

import "time"

// PlayerID 玩家唯一标识，同时作为瓦片归属值；0 表示无主
type PlayerID int

// Tuning 单个玩家推进所需的参数，由房间配置下发
type Tuning struct {
	Speed        float64 // 每秒移动的格数
	ViewportHalf int     // 视口半宽
	ChunkSize    int     // 边缘块宽度
}

// PlayerOptions 创建玩家所需的参数
type PlayerOptions struct {
	ID        PlayerID
	Name      string
	SkinID    int
	Spawn     Vec2
	Direction Direction
	Now       time.Time
	Tuning    Tuning

	Game  Game
	Arena Arena
	Conn  Connection
}

// Player 房间内的玩家实体（服务端权威状态）。
// 只允许 Tick 协程修改；对外只暴露副本。
type Player struct {
	ID     PlayerID
	Name   string
	SkinID int
	Kills  int

	game   Game
	arena  Arena
	conn   Connection
	tuning Tuning

	pos          Vec2
	dir          Direction
	tileProgress float64
	queue        []intent
	trail        trail
	currentTile  PlayerID

	death              *deathState
	permanentlyDead    bool
	permanentlyDieTime time.Time
	disconnected       bool
	tilesCleared       bool
	killer             string
	killerID           PlayerID
	spawnTime          time.Time
	highestRank        int

	lastEdgeChunkSendX int
	lastEdgeChunkSendY int
}

// NewPlayer 在出生点创建玩家：填充出生领地并推送完整视口
func NewPlayer(o PlayerOptions) *Player {
	dir := o.Direction
	if !dir.Valid() {
		dir = DirPaused
	}
	p := &Player{
		ID:                 o.ID,
		Name:               o.Name,
		SkinID:             o.SkinID,
		game:               o.Game,
		arena:              o.Arena,
		conn:               o.Conn,
		tuning:             o.Tuning,
		pos:                o.Spawn,
		dir:                dir,
		currentTile:        o.ID,
		spawnTime:          o.Now,
		lastEdgeChunkSendX: o.Spawn.X,
		lastEdgeChunkSendY: o.Spawn.Y,
	}
	p.arena.FillPlayerSpawn(o.Spawn, o.ID)
	p.arena.RecomputeCapturedArea(o.ID)
	p.trail.updateBounds(p.pos)
	if p.conn != nil {
		p.conn.SendViewportChunk(p.viewportRect())
	}
	return p
}

func (p *Player) Position() Vec2 { return p.pos }

func (p *Player) Direction() Direction { return p.dir }

// SetTuning 热更新参数（仅在 Tick 协程调用）
func (p *Player) SetTuning(t Tuning) { p.tuning = t }

// NoteRank 记录排行榜名次，保留最好成绩
func (p *Player) NoteRank(rank int) {
	if rank > 0 && (p.highestRank == 0 || rank < p.highestRank) {
		p.highestRank = rank
	}
}

// Loop 每个 Tick 调用一次：推进死亡计时、移动、边缘块推送
func (p *Player) Loop(now time.Time, dt time.Duration) {
	if p.disconnected {
		return
	}
	p.updateDeath(now)
	if p.disconnected {
		return
	}
	if p.death == nil && p.dir != DirPaused {
		p.tileProgress += dt.Seconds() * p.tuning.Speed
		for p.tileProgress > 1 && p.death == nil {
			p.tileProgress--
			p.pos = p.pos.Add(p.dir.Delta())
			p.afterMove(now)
		}
	}
	p.updateEdgeChunks()
}

// afterMove 每移动一格后的处理：包围盒、边界与碰撞、领地桥接
func (p *Player) afterMove(now time.Time) {
	p.trail.updateBounds(p.pos)
	if p.checkArenaBounds(now) {
		return
	}
	p.checkTrailCollisions(now)
	if p.death != nil {
		return
	}
	p.updateCurrentTile()
}

// updateCurrentTile 根据脚下瓦片归属开始或闭合轨迹
func (p *Player) updateCurrentTile() {
	v := p.arena.TileValueAt(p.pos)
	if v == p.currentTile {
		return
	}
	p.currentTile = v

	switch {
	case v != p.ID && !p.trail.generating():
		// 离开领地
		p.trail.add(p.pos)
		p.trail.updateBounds(p.pos)
		p.game.BroadcastPlayerTrailChanged(p)
	case v == p.ID && p.trail.generating():
		// 回到领地，闭合并填充
		if p.tilesCleared {
			invariant(p.ID, "fillTrail", "tiles already cleared")
		}
		p.trail.add(p.pos)
		verts := p.trail.reset()
		p.arena.FillTrailPolygon(verts, p.ID)
		p.arena.RecomputeCapturedArea(p.ID)
		p.trail.updateBounds(p.pos)
		p.game.BroadcastPlayerTrailChanged(p)
	}
}
