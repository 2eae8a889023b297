package server

import (
	"encoding/json"
	"net/http"
)

// HandleAdminConfig 提供房间配置的读取与更新（热更新基本规则）
// GET /admin/config?room=room-1  返回当前配置
// POST /admin/config?room=room-1 以 JSON 载荷更新部分字段
func HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = "room-1"
	}
	room, ok := GetRoomManager().LookupRoom(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	type cfg struct {
		Speed            *float64 `json:"speed,omitempty"`
		MaxInputsPerTick *int     `json:"maxInputsPerTick,omitempty"`
		ViewportHalf     *int     `json:"viewportHalf,omitempty"`
		ChunkSize        *int     `json:"chunkSize,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(room.Config())
		return
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		next := room.Config()
		if body.Speed != nil {
			next.Speed = *body.Speed
		}
		if body.MaxInputsPerTick != nil {
			next.MaxInputsPerTick = *body.MaxInputsPerTick
		}
		if body.ViewportHalf != nil {
			next.ViewportHalf = *body.ViewportHalf
		}
		if body.ChunkSize != nil {
			next.ChunkSize = *body.ChunkSize
		}
		if next.Speed < 0 || next.ViewportHalf <= 0 || next.ChunkSize <= 0 || next.MaxInputsPerTick < 0 {
			http.Error(w, "invalid config", http.StatusBadRequest)
			return
		}
		if !room.UpdateConfig(next) {
			http.Error(w, "busy, retry", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=room-1
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = "room-1"
	}
	room, ok := GetRoomManager().LookupRoom(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	payload := map[string]any{
		"room":    roomID,
		"tick":    room.TickSeq(),
		"metrics": room.metrics.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
