package server

import "sync"

// RoomManager 管理多个房间的生命周期
type RoomManager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	cfg    Config
	tokens *TokenIssuer
	feed   EventFeed
}

var (
	defaultManager *RoomManager
	once           sync.Once
)

// ManagerOptions 进程级依赖，在 main 中注入
type ManagerOptions struct {
	Room   Config
	Tokens *TokenIssuer
	Feed   EventFeed
}

// InitRoomManager 以给定依赖初始化单例；须在第一次 GetRoomManager 之前调用
func InitRoomManager(o ManagerOptions) *RoomManager {
	once.Do(func() {
		defaultManager = newRoomManager(o)
	})
	return defaultManager
}

// GetRoomManager 单例房间管理器
func GetRoomManager() *RoomManager {
	once.Do(func() {
		defaultManager = newRoomManager(ManagerOptions{Room: DefaultConfig()})
	})
	return defaultManager
}

func newRoomManager(o ManagerOptions) *RoomManager {
	return &RoomManager{rooms: make(map[string]*Room), cfg: o.Room, tokens: o.Tokens, feed: o.Feed}
}

// Tokens 令牌签发器；未配置密钥时为 nil
func (m *RoomManager) Tokens() *TokenIssuer { return m.tokens }

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		r = NewRoom(id, m.cfg)
		r.feed = m.feed
		m.rooms[id] = r
		r.StartTicker()
	}
	return r
}

// LookupRoom 只查找，不创建
func (m *RoomManager) LookupRoom(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// StopAll 停止所有房间的 Tick
func (m *RoomManager) StopAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		r.Stop()
	}
}
