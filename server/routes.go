package server

import "net/http"

// NewMux 注册全部 HTTP 接口
func NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", HandleWS)
	mux.HandleFunc("/token", HandleToken)
	// 管理与监控接口
	mux.HandleFunc("/admin/config", HandleAdminConfig)
	mux.HandleFunc("/metrics", HandleMetrics)
	mux.HandleFunc("/healthz", HandleHealth)
	return mux
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
}
