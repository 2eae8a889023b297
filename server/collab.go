package server

import "fmt"

// Arena 共享的瓦片网格（玩家核心只通过这些调用与之交互）
type Arena interface {
	Width() int
	Height() int
	TileValueAt(pos Vec2) PlayerID
	FillPlayerSpawn(pos Vec2, id PlayerID)
	FillTrailPolygon(vertices []Vec2, id PlayerID)
	RecomputeCapturedArea(id PlayerID)
	ClearAllTilesOwnedBy(id PlayerID)
	OwnedTileCount(id PlayerID) int
}

// Game 房间级广播与空间查询
type Game interface {
	BroadcastPlayerState(p *Player)
	BroadcastPlayerTrailChanged(p *Player)
	BroadcastPlayerDeath(p *Player, revealPosition bool)
	BroadcastHitLineEffect(victim, killer *Player)
	// PlayersOverlapping 返回轨迹包围盒与 rect 相交的玩家，顺序即房间的迭代顺序
	PlayersOverlapping(rect Rect) []*Player
}

// Connection 单个玩家的出站通道
type Connection interface {
	SendViewportChunk(rect Rect)
	SendGameOver(g GameOver)
	Close()
}

// GameOver 终局通知的载荷
type GameOver struct {
	Tiles       int       `msgpack:"tiles" json:"tiles"`
	Kills       int       `msgpack:"kills" json:"kills"`
	AliveSecs   int       `msgpack:"alive" json:"alive"`
	HighestRank int       `msgpack:"rank" json:"rank"`
	DeathType   DeathType `msgpack:"death" json:"death"`
	Killer      string    `msgpack:"killer,omitempty" json:"killer,omitempty"`
}

// InvariantError 不变量被破坏：属于编程错误，以 panic 抛出，只在房间边界恢复
type InvariantError struct {
	Player PlayerID
	Op     string
	Msg    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: player=%d op=%s: %s", e.Player, e.Op, e.Msg)
}

func invariant(id PlayerID, op, msg string) {
	panic(&InvariantError{Player: id, Op: op, Msg: msg})
}
