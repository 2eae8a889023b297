package server

import "time"

// DeathType 死亡原因，线上以字符串标签传输
type DeathType string

const (
	DeathPlayer     DeathType = "player"
	DeathAreaBounds DeathType = "area-bounds"
	DeathSelf       DeathType = "self"
)

const (
	// PermanentDeathDelay 标记死亡到永久死亡的间隔
	PermanentDeathDelay = 600 * time.Millisecond
	// DisconnectDelay 永久死亡到断开连接的间隔
	DisconnectDelay = 5000 * time.Millisecond
)

type deathState struct {
	dieTime time.Time
	typ     DeathType
}

// die alive -> marked-dead；重复调用无副作用
func (p *Player) die(now time.Time, typ DeathType, revealPosition bool) {
	if p.death != nil {
		return
	}
	p.death = &deathState{dieTime: now, typ: typ}
	p.queue = nil
	p.game.BroadcastPlayerDeath(p, revealPosition)
}

// updateDeath 每个 Tick 检查一次计时器
func (p *Player) updateDeath(now time.Time) {
	if p.death == nil {
		return
	}
	if !p.permanentlyDead && now.Sub(p.death.dieTime) >= PermanentDeathDelay {
		p.permanentlyDie(now)
	}
	if p.permanentlyDead && !p.disconnected && now.Sub(p.permanentlyDieTime) >= DisconnectDelay {
		p.disconnected = true
		if p.conn != nil {
			p.conn.Close()
		}
	}
}

// permanentlyDie marked-dead -> permanently-dead：释放领地并发送终局通知
func (p *Player) permanentlyDie(now time.Time) {
	if p.permanentlyDead {
		return
	}
	p.permanentlyDead = true
	p.permanentlyDieTime = now
	tiles := p.arena.OwnedTileCount(p.ID)
	p.ClearTiles()
	if p.conn != nil {
		p.conn.SendGameOver(GameOver{
			Tiles:       tiles,
			Kills:       p.Kills,
			AliveSecs:   int(p.death.dieTime.Sub(p.spawnTime) / time.Second),
			HighestRank: p.highestRank,
			DeathType:   p.death.typ,
			Killer:      p.killer,
		})
	}
}

// ClearTiles 释放该玩家拥有的全部瓦片，只执行一次
func (p *Player) ClearTiles() {
	if p.tilesCleared {
		return
	}
	p.tilesCleared = true
	p.arena.ClearAllTilesOwnedBy(p.ID)
}

// Dead 是否已被标记死亡
func (p *Player) Dead() bool { return p.death != nil }

// DeathType 死亡原因；存活时为空
func (p *Player) DeathType() DeathType {
	if p.death == nil {
		return ""
	}
	return p.death.typ
}

func (p *Player) PermanentlyDead() bool { return p.permanentlyDead }

// Disconnected 生命周期结束，房间应将其移除
func (p *Player) Disconnected() bool { return p.disconnected }
