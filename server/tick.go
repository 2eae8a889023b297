package server

import "time"

const (
	// TicksPerSecond 世界推进频率（20 TPS）
	TicksPerSecond = 20
)

var tickInterval = time.Duration(1000/TicksPerSecond) * time.Millisecond // 50ms

// StartTicker 启动房间的 Tick 循环（单线程推进世界）
func (r *Room) StartTicker() {
	if r.tickerStarted {
		return
	}
	r.tickerStarted = true
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				// 核心循环：处理输入 → 更新世界 → 收尾
				start := time.Now()
				r.Step(start)
				r.metrics.AddTick(time.Since(start).Nanoseconds())
			}
		}
	}()
}

// Stop 停止 Tick 循环；可重复调用
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}
