package server

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// 出站消息类型
const (
	MsgReady    = "ready"
	MsgState    = "state"
	MsgTrail    = "trail"
	MsgDeath    = "death"
	MsgHitLine  = "hitline"
	MsgChunk    = "chunk"
	MsgGameOver = "gameover"
	MsgLeave    = "leave"
)

type readyMsg struct {
	T      string   `msgpack:"t"`
	ID     PlayerID `msgpack:"id"`
	Pos    Vec2     `msgpack:"pos"`
	Width  int      `msgpack:"w"`
	Height int      `msgpack:"h"`
	Skin   int      `msgpack:"skin"`
}

type stateMsg struct {
	T    string    `msgpack:"t"`
	ID   PlayerID  `msgpack:"id"`
	Name string    `msgpack:"name,omitempty"`
	Pos  Vec2      `msgpack:"pos"`
	Dir  Direction `msgpack:"dir"`
	Skin int       `msgpack:"skin"`
}

type trailMsg struct {
	T     string   `msgpack:"t"`
	ID    PlayerID `msgpack:"id"`
	Trail []Vec2   `msgpack:"trail"`
}

type deathMsg struct {
	T   string   `msgpack:"t"`
	ID  PlayerID `msgpack:"id"`
	Pos *Vec2    `msgpack:"pos,omitempty"`
}

type hitLineMsg struct {
	T      string   `msgpack:"t"`
	Victim PlayerID `msgpack:"victim"`
	Killer PlayerID `msgpack:"killer"`
	From   Vec2     `msgpack:"from"`
	To     Vec2     `msgpack:"to"`
}

type chunkMsg struct {
	T     string     `msgpack:"t"`
	Rect  Rect       `msgpack:"rect"`
	Tiles []PlayerID `msgpack:"tiles"`
}

type gameOverMsg struct {
	T string `msgpack:"t"`
	GameOver
}

type leaveMsg struct {
	T  string   `msgpack:"t"`
	ID PlayerID `msgpack:"id"`
}

func encodeMsg(v any) []byte {
	b, err := msgpack.Marshal(v)
	if err != nil {
		Log.Errorf("encode %T: %v", v, err)
		return nil
	}
	return b
}

// InputMessage 入站输入：文本帧为 JSON，二进制帧为 msgpack
// 示例：{"type":"move","dir":1,"x":10,"y":12}
type InputMessage struct {
	Type string `json:"type" msgpack:"type"`
	Dir  int    `json:"dir" msgpack:"dir"`
	X    int    `json:"x" msgpack:"x"`
	Y    int    `json:"y" msgpack:"y"`
}

func decodeInput(binary bool, payload []byte) (InputMessage, error) {
	var im InputMessage
	var err error
	if binary {
		err = msgpack.Unmarshal(payload, &im)
	} else {
		err = json.Unmarshal(payload, &im)
	}
	if err != nil {
		return im, fmt.Errorf("decode input: %w", err)
	}
	return im, nil
}
