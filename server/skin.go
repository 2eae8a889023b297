package server

// SkinsCount 可用皮肤（颜色）数量
const SkinsCount = 13

// SkinIDForPlayer 返回 other 看到的本玩家皮肤。与对方撞色时，
// 用 ID 推导出一个替代色，并跳过对方的皮肤。
func (p *Player) SkinIDForPlayer(other *Player) int {
	if other == nil || other == p || other.SkinID != p.SkinID {
		return p.SkinID
	}
	m := SkinsCount - 1
	c := ((int(p.ID) % m) + m) % m
	if c >= other.SkinID {
		c++
	}
	return c
}
