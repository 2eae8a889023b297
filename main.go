package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paperarena/server"
)

// paperarena 入口：启动 HTTP + WebSocket 服务，并初始化房间管理器
func main() {
	opts := server.ServerOptions{Room: server.DefaultConfig()}
	flag.StringVar(&opts.Addr, "addr", ":8080", "server listen address, e.g. :8080")
	flag.StringVar(&opts.LogFile, "log", "app.log", "log file path")
	flag.StringVar(&opts.LogLevel, "log-level", "debug", "log level: debug/info/warn/error")
	flag.StringVar(&opts.TokenSecret, "token-secret", "", "HS256 secret for player tokens; empty disables tokens")
	flag.StringVar(&opts.MQTTBroker, "mqtt", "", "MQTT broker for the death ticker, e.g. tcp://localhost:1883")
	flag.StringVar(&opts.MQTTPrefix, "mqtt-prefix", "", "MQTT topic prefix")
	flag.IntVar(&opts.Room.Width, "width", opts.Room.Width, "arena width in tiles")
	flag.IntVar(&opts.Room.Height, "height", opts.Room.Height, "arena height in tiles")
	flag.Float64Var(&opts.Room.Speed, "speed", opts.Room.Speed, "player speed in tiles per second")
	flag.Parse()

	// 使用第三方 zap 日志库写入日志文件（带滚动）
	if err := server.InitLogger(opts.LogFile, opts.LogLevel); err != nil {
		panic(err)
	}
	defer server.SyncLogger()
	opts.ApplyEnv()

	mo := server.ManagerOptions{Room: opts.Room}
	if opts.TokenSecret != "" {
		mo.Tokens = server.NewTokenIssuer(opts.TokenSecret)
	}
	if opts.MQTTBroker != "" {
		feed, err := server.NewMQTTFeed(opts.MQTTBroker, opts.MQTTPrefix, "paperarena-server")
		if err != nil {
			// 快讯不是必需功能，连接失败时继续运行
			server.Log.Warnf("ticker disabled: %v", err)
		} else {
			mo.Feed = feed
			defer feed.Close()
		}
	}
	rm := server.InitRoomManager(mo)
	// 先预创建一个默认房间，便于快速试跑
	_ = rm.GetOrCreateRoom("room-1")

	srv := &http.Server{Addr: opts.Addr, Handler: server.NewMux()}

	go func() {
		server.Log.Infof("paperarena listening on %s", opts.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	rm.StopAll()
}
