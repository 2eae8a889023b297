package server

import (
	"math/rand"
	"testing"
)

func TestSubmitIntentRejectsSameAxis(t *testing.T) {
	h := newHarness()
	p, _ := h.spawn(t, 1, Vec2{50, 50}, DirRight)

	for _, dir := range []Direction{DirRight, DirLeft} {
		acc, rej := p.SubmitIntent(dir, Vec2{50, 50})
		if acc != 0 || rej != 1 {
			t.Fatalf("%v: accepted=%d rejected=%d", dir, acc, rej)
		}
	}
	if p.Direction() != DirRight || p.QueueLen() != 0 || h.game.states != 0 {
		t.Fatalf("state changed: dir=%v queue=%d states=%d", p.Direction(), p.QueueLen(), h.game.states)
	}
}

func TestSubmitIntentPerpendicularAligned(t *testing.T) {
	h := newHarness()
	p, _ := h.spawn(t, 1, Vec2{50, 50}, DirRight)
	setTrail(p, Vec2{60, 50}, DirRight, Vec2{55, 50})

	acc, rej := p.SubmitIntent(DirUp, Vec2{59, 50})
	if acc != 0 || rej != 1 {
		t.Fatalf("misaligned x must be rejected for a horizontal mover, got acc=%d rej=%d", acc, rej)
	}

	acc, _ = p.SubmitIntent(DirUp, Vec2{60, 50})
	if acc != 1 {
		t.Fatalf("aligned turn rejected")
	}
	if p.Direction() != DirUp || p.Position() != (Vec2{60, 50}) {
		t.Fatalf("dir=%v pos=%v", p.Direction(), p.Position())
	}
	if got := p.Trail(); len(got) != 2 || got[1] != (Vec2{60, 50}) {
		t.Fatalf("turn point not appended to trail: %v", got)
	}
	if h.game.states != 1 {
		t.Fatalf("expected one state broadcast, got %d", h.game.states)
	}
}

func TestSubmitIntentSnapsToDesiredPosition(t *testing.T) {
	h := newHarness()
	p, _ := h.spawn(t, 1, Vec2{50, 50}, DirDown)
	p.pos = Vec2{50, 57}

	// 竖直移动：y 对齐即可，x 按客户端上报的位置修正
	if acc, _ := p.SubmitIntent(DirLeft, Vec2{48, 57}); acc != 1 {
		t.Fatalf("turn rejected")
	}
	if p.Position() != (Vec2{48, 57}) || p.Direction() != DirLeft {
		t.Fatalf("pos=%v dir=%v", p.Position(), p.Direction())
	}
	// 水平移动：x 对齐
	if acc, _ := p.SubmitIntent(DirUp, Vec2{48, 55}); acc != 1 {
		t.Fatalf("second turn rejected")
	}
	if p.Position() != (Vec2{48, 55}) || p.Direction() != DirUp {
		t.Fatalf("pos=%v dir=%v", p.Position(), p.Direction())
	}
	if h.game.states != 2 {
		t.Fatalf("states = %d", h.game.states)
	}
}

func TestSubmitIntentUnreachableLeavesStateUnchanged(t *testing.T) {
	h := newHarness()
	p, _ := h.spawn(t, 1, Vec2{50, 50}, DirUp)

	_, rej := p.SubmitIntent(DirRight, Vec2{50, 49})
	if rej != 1 {
		t.Fatalf("expected rejection")
	}
	if p.Direction() != DirUp || p.Position() != (Vec2{50, 50}) || p.QueueLen() != 0 {
		t.Fatalf("dir=%v pos=%v queue=%d", p.Direction(), p.Position(), p.QueueLen())
	}
}

func TestSubmitIntentPaused(t *testing.T) {
	h := newHarness()
	p, _ := h.spawn(t, 1, Vec2{50, 50}, DirLeft)

	if acc, _ := p.SubmitIntent(DirPaused, Vec2{48, 50}); acc != 1 {
		t.Fatalf("pause must always be accepted")
	}
	if p.Position() != (Vec2{48, 50}) {
		t.Fatalf("pause did not snap: %v", p.Position())
	}
	if _, rej := p.SubmitIntent(DirPaused, Vec2{48, 50}); rej != 1 {
		t.Fatalf("paused -> paused must be rejected")
	}
	// 暂停不属于任何轴：可以朝原方向的反方向出发，并修正到客户端上报的位置
	if acc, _ := p.SubmitIntent(DirRight, Vec2{50, 52}); acc != 1 {
		t.Fatalf("leaving pause rejected")
	}
	if p.Direction() != DirRight || p.Position() != (Vec2{50, 52}) {
		t.Fatalf("dir=%v pos=%v", p.Direction(), p.Position())
	}
	if h.game.states != 2 {
		t.Fatalf("states = %d", h.game.states)
	}
}

func TestSubmitIntentLeavingPauseAppendsTrailVertex(t *testing.T) {
	h := newHarness()
	p, _ := h.spawn(t, 1, Vec2{50, 50}, DirRight)
	setTrail(p, Vec2{60, 50}, DirPaused, Vec2{55, 50})

	if acc, _ := p.SubmitIntent(DirDown, Vec2{61, 50}); acc != 1 {
		t.Fatalf("leaving pause rejected")
	}
	if got := p.Trail(); len(got) != 2 || got[1] != (Vec2{61, 50}) {
		t.Fatalf("trail = %v", got)
	}
	if p.TrailBounds() != (Rect{Min: Vec2{55, 50}, Max: Vec2{61, 50}}) {
		t.Fatalf("bounds = %+v", p.TrailBounds())
	}
}

func TestSubmitIntentDiscardedWhileDead(t *testing.T) {
	h := newHarness()
	p, _ := h.spawn(t, 1, Vec2{50, 50}, DirRight)
	p.die(t0, DeathSelf, true)
	if _, rej := p.SubmitIntent(DirUp, Vec2{50, 50}); rej != 1 {
		t.Fatalf("intent accepted while dead")
	}
	if p.Direction() != DirRight {
		t.Fatalf("dir changed while dead")
	}
}

func TestAcceptedTurnsAlternateAxis(t *testing.T) {
	h := newHarness()
	p, _ := h.spawn(t, 1, Vec2{50, 50}, DirRight)
	rng := rand.New(rand.NewSource(7))

	prev := p.Direction()
	for i := 0; i < 2000; i++ {
		dir := Direction(rng.Intn(5))
		desired := p.Position()
		if rng.Intn(3) == 0 {
			desired = desired.Add(Vec2{X: rng.Intn(3) - 1, Y: rng.Intn(3) - 1})
		}
		acc, _ := p.SubmitIntent(dir, desired)
		if acc == 0 {
			continue
		}
		cur := p.Direction()
		if cur != DirPaused && prev != DirPaused && cur.SameAxis(prev) {
			t.Fatalf("step %d: accepted same-axis turn %v -> %v", i, prev, cur)
		}
		if cur == prev {
			t.Fatalf("step %d: accepted identical direction %v", i, cur)
		}
		prev = cur
	}
}
