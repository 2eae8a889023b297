package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount         int64 // 统计的 Tick 次数
	IntentsAccepted   int64 // 被接受的转向意图
	IntentsRejected   int64 // 校验失败被丢弃的意图
	RateLimited       int64 // 因同帧限流被拒绝的输入数
	ChanFullDiscarded int64 // 因通道满被丢弃的输入数
	Deaths            int64 // 死亡次数
	ChunksSent        int64 // 推送的视口块
	PlayerFaults      int64 // 因不变量被破坏而断开的玩家
	TotalTickNs       int64 // Tick 累计耗时（纳秒）
}

func (m *RoomMetrics) AddIntents(accepted, rejected int) {
	atomic.AddInt64(&m.IntentsAccepted, int64(accepted))
	atomic.AddInt64(&m.IntentsRejected, int64(rejected))
}
func (m *RoomMetrics) IncRateLimited()       { atomic.AddInt64(&m.RateLimited, 1) }
func (m *RoomMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *RoomMetrics) IncDeaths()            { atomic.AddInt64(&m.Deaths, 1) }
func (m *RoomMetrics) IncChunksSent()        { atomic.AddInt64(&m.ChunksSent, 1) }
func (m *RoomMetrics) IncPlayerFaults()      { atomic.AddInt64(&m.PlayerFaults, 1) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"intents_accepted":    atomic.LoadInt64(&m.IntentsAccepted),
		"intents_rejected":    atomic.LoadInt64(&m.IntentsRejected),
		"rate_limited":        atomic.LoadInt64(&m.RateLimited),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"deaths":              atomic.LoadInt64(&m.Deaths),
		"chunks_sent":         atomic.LoadInt64(&m.ChunksSent),
		"player_faults":       atomic.LoadInt64(&m.PlayerFaults),
		"avg_tick_ms":         avgMs,
	}
}
