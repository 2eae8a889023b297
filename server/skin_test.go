package server

import "testing"

func TestSkinIDForPlayerNeverCollides(t *testing.T) {
	for id := 1; id <= 60; id++ {
		for skin := 0; skin < SkinsCount; skin++ {
			p := &Player{ID: PlayerID(id), SkinID: skin}
			other := &Player{ID: PlayerID(id + 1000), SkinID: skin}

			got := p.SkinIDForPlayer(other)
			if got == other.SkinID {
				t.Fatalf("id=%d skin=%d: remapped to the viewer's own skin", id, skin)
			}
			if got < 0 || got >= SkinsCount {
				t.Fatalf("id=%d skin=%d: out of range %d", id, skin, got)
			}
		}
	}
}

func TestSkinIDForPlayerKeepsDistinctSkins(t *testing.T) {
	p := &Player{ID: 4, SkinID: 3}
	if got := p.SkinIDForPlayer(&Player{ID: 9, SkinID: 7}); got != 3 {
		t.Fatalf("distinct skins must be kept, got %d", got)
	}
	if got := p.SkinIDForPlayer(p); got != 3 {
		t.Fatalf("own skin must be kept, got %d", got)
	}
	if got := p.SkinIDForPlayer(nil); got != 3 {
		t.Fatalf("nil viewer, got %d", got)
	}
}

func TestSkinIDForPlayerMapping(t *testing.T) {
	for _, tc := range []struct {
		id, skin, want int
	}{
		{id: 1, skin: 5, want: 1},  // 1 < 5
		{id: 5, skin: 5, want: 6},  // 5 >= 5，跳过
		{id: 7, skin: 5, want: 8},
		{id: 12, skin: 0, want: 1}, // 12 mod 12 = 0
		{id: 11, skin: 12, want: 11},
	} {
		p := &Player{ID: PlayerID(tc.id), SkinID: tc.skin}
		other := &Player{ID: 99, SkinID: tc.skin}
		if got := p.SkinIDForPlayer(other); got != tc.want {
			t.Errorf("id=%d skin=%d: got %d, want %d", tc.id, tc.skin, got, tc.want)
		}
	}
}
