package server

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// ErrRoomFull 找不到空闲的出生点
var ErrRoomFull = errors.New("no free spawn position")

// ErrRoomStopped 房间已停止
var ErrRoomStopped = errors.New("room stopped")

type joinRequest struct {
	name  string
	conn  *ClientConn
	reply chan PlayerID
}

// Room 房间世界：权威状态维护在内存，单线程 Tick 推进。
// 除通道与 metrics 外的字段只允许 Tick 协程访问。
type Room struct {
	ID string

	cfg     Config
	arena   *GridArena
	players []*Player // 加入顺序，即每个 Tick 的迭代顺序
	byID    map[PlayerID]*Player
	conns   map[PlayerID]*ClientConn
	nextID  PlayerID

	inputChan chan Input
	joinChan  chan joinRequest
	leaveChan chan PlayerID
	cfgChan   chan Config

	inputsThisTick map[PlayerID]int
	lastTick       time.Time

	metrics   *RoomMetrics
	tickSeq   int64
	published atomic.Pointer[Config]
	feed      EventFeed

	tickerStarted bool
	stop          chan struct{}
	stopOnce      sync.Once
}

// NewRoom 创建房间，初始化数据结构
func NewRoom(id string, cfg Config) *Room {
	r := &Room{
		ID:             id,
		cfg:            cfg,
		arena:          NewGridArena(cfg.Width, cfg.Height, time.Now().UnixNano()),
		byID:           make(map[PlayerID]*Player),
		conns:          make(map[PlayerID]*ClientConn),
		inputChan:      make(chan Input, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		joinChan:       make(chan joinRequest, 16),
		leaveChan:      make(chan PlayerID, 64),
		cfgChan:        make(chan Config, 4),
		inputsThisTick: make(map[PlayerID]int),
		metrics:        &RoomMetrics{},
		stop:           make(chan struct{}),
	}
	r.published.Store(&cfg)
	return r
}

// Join 从网络协程请求加入，在 Tick 协程中完成创建
func (r *Room) Join(name string, conn *ClientConn) (PlayerID, error) {
	req := joinRequest{name: name, conn: conn, reply: make(chan PlayerID, 1)}
	select {
	case r.joinChan <- req:
	case <-r.stop:
		return 0, ErrRoomStopped
	}
	select {
	case id := <-req.reply:
		if id == 0 {
			return 0, ErrRoomFull
		}
		return id, nil
	case <-r.stop:
		return 0, ErrRoomStopped
	}
}

// JoinPlayer 将玩家加入房间（仅限 Tick 协程）；没有空位时返回 nil
func (r *Room) JoinPlayer(name string, conn *ClientConn, now time.Time) *Player {
	spawn, ok := r.arena.FindSpawn()
	if !ok {
		return nil
	}
	r.nextID++
	id := r.nextID
	skin := (int(id) - 1) % SkinsCount

	var pc Connection
	if conn != nil {
		r.conns[id] = conn
		conn.Enqueue(encodeMsg(readyMsg{T: MsgReady, ID: id, Pos: spawn, Width: r.arena.Width(), Height: r.arena.Height(), Skin: skin}))
		pc = &playerConn{room: r, c: conn}
	}
	p := NewPlayer(PlayerOptions{
		ID:        id,
		Name:      name,
		SkinID:    skin,
		Spawn:     spawn,
		Direction: DirPaused,
		Now:       now,
		Tuning:    r.cfg.tuning(),
		Game:      r,
		Arena:     r.arena,
		Conn:      pc,
	})
	r.players = append(r.players, p)
	r.byID[id] = p

	// 新玩家需要看到已有玩家，已有玩家需要看到新玩家
	if conn != nil {
		for _, other := range r.players {
			if other == p {
				continue
			}
			conn.Enqueue(encodeMsg(r.stateFor(other, p)))
			if other.Generating() {
				conn.Enqueue(encodeMsg(trailMsg{T: MsgTrail, ID: other.ID, Trail: other.Trail()}))
			}
		}
	}
	r.BroadcastPlayerState(p)
	Log.Infof("room=%s player joined id=%d name=%q spawn=(%d,%d)", r.ID, id, name, spawn.X, spawn.Y)
	return p
}

// LeavePlayer 将玩家移出房间
func (r *Room) LeavePlayer(id PlayerID) {
	if p, ok := r.byID[id]; ok {
		r.removePlayer(p)
	}
}

func (r *Room) removePlayer(p *Player) {
	p.ClearTiles()
	r.players = slices.DeleteFunc(r.players, func(x *Player) bool { return x == p })
	delete(r.byID, p.ID)
	delete(r.inputsThisTick, p.ID)
	if c, ok := r.conns[p.ID]; ok {
		c.Close()
		delete(r.conns, p.ID)
	}
	b := encodeMsg(leaveMsg{T: MsgLeave, ID: p.ID})
	r.sendAll(func(*Player) []byte { return b })
	Log.Infof("room=%s player removed id=%d", r.ID, p.ID)
}

// OnInput 入站输入（不立即改变状态），仅记录意图，等下一次 Tick 处理
func (r *Room) OnInput(in Input) {
	select {
	case r.inputChan <- in:
	default:
		// 丢弃：为了实时性，避免背压影响世界推进
		r.metrics.IncChanFullDiscarded()
	}
}

// RequestLeave 请求在 Tick 线程中移除玩家，避免并发改动房间状态
func (r *Room) RequestLeave(pid PlayerID) {
	select {
	case r.leaveChan <- pid:
	case <-r.stop:
	}
}

// UpdateConfig 请求在 Tick 线程中应用新配置；队列满时返回 false
func (r *Room) UpdateConfig(c Config) bool {
	select {
	case r.cfgChan <- c:
		return true
	default:
		return false
	}
}

// Config 最近一次生效的配置（可在任意协程读取）
func (r *Room) Config() Config { return *r.published.Load() }

func (r *Room) applyConfig(c Config) {
	// 网格尺寸在房间创建后固定
	c.Width, c.Height = r.cfg.Width, r.cfg.Height
	r.cfg = c
	for _, p := range r.players {
		p.SetTuning(c.tuning())
	}
	r.published.Store(&c)
	Log.Infof("config updated: room=%s speed=%.2f maxInputsPerTick=%d viewport=%d chunk=%d",
		r.ID, c.Speed, c.MaxInputsPerTick, c.ViewportHalf, c.ChunkSize)
}

// BeginTick 重置帧内状态
func (r *Room) BeginTick() {
	clear(r.inputsThisTick)
}

// ProcessInputs 处理当前帧的所有入站请求（非阻塞 drain）
func (r *Room) ProcessInputs(now time.Time) {
	for {
		select {
		case req := <-r.joinChan:
			var id PlayerID
			if p := r.JoinPlayer(req.name, req.conn, now); p != nil {
				id = p.ID
			}
			req.reply <- id
		case pid := <-r.leaveChan:
			r.LeavePlayer(pid)
		case c := <-r.cfgChan:
			r.applyConfig(c)
		case in := <-r.inputChan:
			r.applyInput(in)
		default:
			return
		}
	}
}

func (r *Room) applyInput(in Input) {
	p, ok := r.byID[in.PlayerID]
	if !ok {
		return
	}
	r.inputsThisTick[in.PlayerID]++
	if r.cfg.MaxInputsPerTick > 0 && r.inputsThisTick[in.PlayerID] > r.cfg.MaxInputsPerTick {
		r.metrics.IncRateLimited()
		return
	}
	r.metrics.AddIntents(p.SubmitIntent(in.Dir, in.Desired))
}

// UpdateWorld 按加入顺序推进每个玩家
func (r *Room) UpdateWorld(now time.Time, dt time.Duration) {
	for _, p := range slices.Clone(r.players) {
		if _, ok := r.byID[p.ID]; !ok {
			continue
		}
		r.loopPlayer(p, now, dt)
	}
}

// loopPlayer 单个玩家的推进；不变量被破坏时只断开该玩家
func (r *Room) loopPlayer(p *Player, now time.Time, dt time.Duration) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		var ie *InvariantError
		if err, ok := rec.(error); ok && errors.As(err, &ie) {
			Log.Errorw("player aborted", "room", r.ID, "player", p.ID, "op", ie.Op, "err", ie.Msg)
		} else {
			Log.Errorw("player loop panic", "room", r.ID, "player", p.ID, "panic", fmt.Sprint(rec))
		}
		r.metrics.IncPlayerFaults()
		r.removePlayer(p)
	}()
	p.Loop(now, dt)
}

// FinishTick 移除生命周期结束的玩家，并刷新排行
func (r *Room) FinishTick() {
	for _, p := range slices.Clone(r.players) {
		if p.Disconnected() {
			r.removePlayer(p)
		}
	}
	for i, id := range r.arena.Leaderboard() {
		if p, ok := r.byID[id]; ok {
			p.NoteRank(i + 1)
		}
	}
}

// Step 完整推进一帧：处理输入 → 更新世界 → 收尾
func (r *Room) Step(now time.Time) {
	dt := tickInterval
	if !r.lastTick.IsZero() {
		dt = now.Sub(r.lastTick)
	}
	r.lastTick = now
	r.BeginTick()
	r.ProcessInputs(now)
	r.UpdateWorld(now, dt)
	r.FinishTick()
	atomic.AddInt64(&r.tickSeq, 1)
}

// TickSeq 已完成的帧数
func (r *Room) TickSeq() int64 { return atomic.LoadInt64(&r.tickSeq) }

// Players 当前玩家（加入顺序，仅限 Tick 协程）
func (r *Room) Players() []*Player { return slices.Clone(r.players) }

// Arena 房间网格（仅限 Tick 协程）
func (r *Room) Arena() *GridArena { return r.arena }

// PlayersOverlapping 线性扫描，按加入顺序返回轨迹包围盒与 rect 相交的玩家
func (r *Room) PlayersOverlapping(rect Rect) []*Player {
	var out []*Player
	for _, p := range r.players {
		if p.TrailBounds().Overlaps(rect) {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) sendAll(build func(to *Player) []byte) {
	for _, to := range r.players {
		c, ok := r.conns[to.ID]
		if !ok {
			continue
		}
		if b := build(to); b != nil {
			c.Enqueue(b)
		}
	}
}

func (r *Room) stateFor(p, to *Player) stateMsg {
	return stateMsg{T: MsgState, ID: p.ID, Name: p.Name, Pos: p.Position(), Dir: p.Direction(), Skin: p.SkinIDForPlayer(to)}
}

// BroadcastPlayerState 皮肤按接收方逐个计算
func (r *Room) BroadcastPlayerState(p *Player) {
	r.sendAll(func(to *Player) []byte { return encodeMsg(r.stateFor(p, to)) })
}

func (r *Room) BroadcastPlayerTrailChanged(p *Player) {
	b := encodeMsg(trailMsg{T: MsgTrail, ID: p.ID, Trail: p.Trail()})
	r.sendAll(func(*Player) []byte { return b })
}

func (r *Room) BroadcastPlayerDeath(p *Player, revealPosition bool) {
	r.metrics.IncDeaths()
	msg := deathMsg{T: MsgDeath, ID: p.ID}
	if revealPosition {
		pos := p.Position()
		msg.Pos = &pos
	}
	b := encodeMsg(msg)
	r.sendAll(func(*Player) []byte { return b })
	if r.feed != nil {
		r.feed.PublishDeath(r.ID, tickerEventFor(p))
	}
	Log.Infow("player died", "room", r.ID, "player", p.ID, "type", string(p.DeathType()))
}

func (r *Room) BroadcastHitLineEffect(victim, killer *Player) {
	b := encodeMsg(hitLineMsg{T: MsgHitLine, Victim: victim.ID, Killer: killer.ID, From: victim.Position(), To: killer.Position()})
	r.sendAll(func(*Player) []byte { return b })
}

// playerConn 把 Connection 接口接到 ClientConn 上
type playerConn struct {
	room *Room
	c    *ClientConn
}

func (pc *playerConn) SendViewportChunk(rect Rect) {
	clipped, tiles, ok := pc.room.arena.Snapshot(rect)
	if !ok {
		return
	}
	pc.c.Enqueue(encodeMsg(chunkMsg{T: MsgChunk, Rect: clipped, Tiles: tiles}))
	pc.room.metrics.IncChunksSent()
}

func (pc *playerConn) SendGameOver(g GameOver) {
	pc.c.Enqueue(encodeMsg(gameOverMsg{T: MsgGameOver, GameOver: g}))
}

func (pc *playerConn) Close() { pc.c.Close() }
