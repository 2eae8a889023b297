package server

import (
	"os"
	"strconv"
)

// Config 房间玩法参数，可通过 /admin/config 热更新
type Config struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Speed            float64 `json:"speed"`
	ViewportHalf     int     `json:"viewportHalf"`
	ChunkSize        int     `json:"chunkSize"`
	MaxInputsPerTick int     `json:"maxInputsPerTick"`
}

func DefaultConfig() Config {
	return Config{
		Width:            600,
		Height:           600,
		Speed:            6,
		ViewportHalf:     20,
		ChunkSize:        5,
		MaxInputsPerTick: 8,
	}
}

func (c Config) tuning() Tuning {
	return Tuning{Speed: c.Speed, ViewportHalf: c.ViewportHalf, ChunkSize: c.ChunkSize}
}

// ServerOptions 进程级配置：命令行优先，其次环境变量
type ServerOptions struct {
	Addr        string
	LogFile     string
	LogLevel    string
	TokenSecret string
	MQTTBroker  string
	MQTTPrefix  string
	Room        Config
}

const (
	envTokenSecret = "PAPERARENA_TOKEN_SECRET"
	envMQTTBroker  = "PAPERARENA_MQTT_BROKER"
	envMQTTPrefix  = "PAPERARENA_MQTT_PREFIX"
	envArenaSize   = "PAPERARENA_ARENA_SIZE"
)

// ApplyEnv 用环境变量补全未通过命令行设置的字段
func (o *ServerOptions) ApplyEnv() {
	if o.TokenSecret == "" {
		o.TokenSecret = os.Getenv(envTokenSecret)
	}
	if o.MQTTBroker == "" {
		o.MQTTBroker = os.Getenv(envMQTTBroker)
	}
	if o.MQTTPrefix == "" {
		o.MQTTPrefix = os.Getenv(envMQTTPrefix)
	}
	if o.MQTTPrefix == "" {
		o.MQTTPrefix = "paperarena"
	}
	def := DefaultConfig()
	if v := os.Getenv(envArenaSize); v != "" && o.Room.Width == def.Width && o.Room.Height == def.Height {
		if n, err := strconv.Atoi(v); err == nil && n > 2*(SpawnRadius+2) {
			o.Room.Width, o.Room.Height = n, n
		} else {
			Log.Warnf("ignoring %s=%q", envArenaSize, v)
		}
	}
}
