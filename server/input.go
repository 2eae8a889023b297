package server

// Input 客户端转向意图，由网络协程投递，在 Tick 协程中应用
type Input struct {
	PlayerID PlayerID
	Dir      Direction
	Desired  Vec2
}

// inputFromMessage 把入站消息转换为意图；非 move 消息或方向非法返回 false
func inputFromMessage(id PlayerID, im InputMessage) (Input, bool) {
	if im.Type != "move" {
		return Input{}, false
	}
	dir := Direction(im.Dir)
	if !dir.Valid() {
		return Input{}, false
	}
	return Input{PlayerID: id, Dir: dir, Desired: Vec2{X: im.X, Y: im.Y}}, true
}
