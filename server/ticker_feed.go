package server

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// TickerEvent 对外发布的击杀快讯
// 示例：{"type":"frag","casualty":3,"fragger":7}
type TickerEvent struct {
	Type     string   `json:"type"`
	Casualty PlayerID `json:"casualty"`
	Fragger  PlayerID `json:"fragger,omitempty"`
}

// EventFeed 击杀快讯的发布端；发布失败不影响模拟
type EventFeed interface {
	PublishDeath(room string, ev TickerEvent)
	Close()
}

func tickerEventFor(p *Player) TickerEvent {
	ev := TickerEvent{Casualty: p.ID}
	switch p.DeathType() {
	case DeathPlayer:
		ev.Type = "frag"
		ev.Fragger = p.killerID
	case DeathSelf:
		ev.Type = "suicide"
	default:
		ev.Type = "collision"
	}
	return ev
}

// Quality-of-Service (at least once)
const tickerQOS = 1

// MQTTFeed 通过 MQTT 发布到 <prefix>/<room>/ticker
type MQTTFeed struct {
	client mqtt.Client
	prefix string
}

// NewMQTTFeed 连接 broker；连接失败返回错误
func NewMQTTFeed(broker, prefix, clientID string) (*MQTTFeed, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(5 * time.Second)
	opts.SetConnectionLostHandler(func(c mqtt.Client, err error) {
		Log.Warnf("mqtt connection lost: %v", err)
	})
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		Log.Infof("connected to mqtt broker %s", broker)
	})

	client := mqtt.NewClient(opts)
	tok := client.Connect()
	if tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("connect mqtt %s: %w", broker, tok.Error())
	}
	return &MQTTFeed{client: client, prefix: prefix}, nil
}

func (f *MQTTFeed) topic(room string) string {
	return f.prefix + "/" + room + "/ticker"
}

// PublishDeath 异步发布，不阻塞 Tick
func (f *MQTTFeed) PublishDeath(room string, ev TickerEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		Log.Errorf("marshal ticker event: %v", err)
		return
	}
	topic := f.topic(room)
	go func() {
		tok := f.client.Publish(topic, tickerQOS, false, b)
		if tok.Wait() && tok.Error() != nil {
			Log.Warnf("publish to %s failed: %v", topic, tok.Error())
		}
	}()
}

func (f *MQTTFeed) Close() {
	f.client.Disconnect(250)
}
