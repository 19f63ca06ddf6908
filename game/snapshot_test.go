package game

import "testing"

func TestSnapshotPaintOrder(t *testing.T) {
	s := NewState(testConfig(), nil)
	s.Tick(0, Intent{Firing: true})
	s.explode(100, 100, s.cfg.EnemyColor)

	snap := s.Snapshot()
	wantLen := len(s.Particles) + 1 + len(s.Enemies) + len(s.Bullets)
	if len(snap.Drawables) != wantLen {
		t.Fatalf("drawables = %d, want %d", len(snap.Drawables), wantLen)
	}

	order := map[DrawableKind]int{KindParticle: 0, KindTank: 1, KindBullet: 2}
	for i := 1; i < len(snap.Drawables); i++ {
		if order[snap.Drawables[i].Kind] < order[snap.Drawables[i-1].Kind] {
			t.Fatalf("drawable %d (%v) painted after %v", i, snap.Drawables[i].Kind, snap.Drawables[i-1].Kind)
		}
	}

	player := snap.Drawables[len(s.Particles)]
	if player.Kind != KindTank || player.Role != RolePlayer {
		t.Fatalf("first tank is %+v, want the player", player)
	}
	last := snap.Drawables[len(snap.Drawables)-1]
	if last.Kind != KindBullet || last.Color != PlayerBulletColor {
		t.Errorf("last drawable = %+v, want a player bullet", last)
	}
	if snap.Score != 0 || snap.Level != 1 || snap.GameOver || snap.RestartVisible {
		t.Errorf("HUD fields = %+v", snap)
	}
}

func TestSnapshotAfterGameOver(t *testing.T) {
	s := NewState(testConfig(), nil)
	s.Bullets = append(s.Bullets, NewBullet(100, 100, 0, 7, OwnerEnemy))
	s.GameOver()
	s.explode(200, 200, s.cfg.PlayerColor)
	s.Tick(FrameMillis, Intent{})

	snap := s.Snapshot()
	if !snap.GameOver || !snap.RestartVisible {
		t.Fatal("game over not reflected in snapshot")
	}
	if len(snap.Drawables) != len(s.Particles) || len(s.Particles) == 0 {
		t.Fatalf("drawables = %d, want only the %d particles", len(snap.Drawables), len(s.Particles))
	}
	for _, d := range snap.Drawables {
		if d.Kind != KindParticle {
			t.Fatalf("%v drawn after game over", d.Kind)
		}
	}
	if snap.ShakeX != s.ShakeX || snap.ShakeY != s.ShakeY {
		t.Error("shake offset not copied")
	}
}
