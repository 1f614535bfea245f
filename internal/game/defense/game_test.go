package defense

import (
	"strings"
	"testing"

	"github.com/vovakirdan/topdeck/internal/config"
	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/director"
	"github.com/vovakirdan/topdeck/internal/wave"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 12345}
}

func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// playWave starts a wave and steps until it completes.
func playWave(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	g.Step(press(core.ActionNextWave))
	if g.Phase() != PhaseBattle {
		t.Fatalf("phase after next wave = %v, want battle", g.Phase())
	}
	for i := 0; i < 20000; i++ {
		res := g.Step(core.NewInputFrame())
		if res.WaveCompleted {
			return res
		}
	}
	t.Fatal("wave did not complete")
	return core.StepResult{}
}

func TestGameReset(t *testing.T) {
	g := New(config.DefaultConfig())
	g.Reset(testRuntime())

	if g.Phase() != PhaseShop {
		t.Errorf("Phase() = %v, want shop", g.Phase())
	}
	st := g.State()
	if st.Wave != 0 || st.Score != 0 || st.GameOver {
		t.Errorf("State() = %+v after reset", st)
	}
	if g.Session().Wave() != 1 {
		t.Errorf("session wave = %d, want 1", g.Session().Wave())
	}
	if g.Session().Seed() != 12345 {
		t.Errorf("session seed = %d, want 12345", g.Session().Seed())
	}
}

func TestGameShopPurchases(t *testing.T) {
	cfg := config.DefaultConfig()
	g := New(cfg)
	g.Reset(testRuntime())
	start := g.Session().Wallet().Balance()

	g.Step(press(core.ActionUpgradeDefense))
	if lvl := g.Session().Upgrades().DefenderLevel(); lvl != 1 {
		t.Fatalf("defender level = %d, want 1", lvl)
	}
	if got := g.Session().Wallet().Balance(); got != start-cfg.Upgrades.Defender.Cost {
		t.Errorf("balance = %d, want %d", got, start-cfg.Upgrades.Defender.Cost)
	}

	g.Step(press(core.ActionUpgradeDefense))
	g.Step(press(core.ActionUpgradeDefense))
	if lvl := g.Session().Upgrades().DefenderLevel(); lvl != cfg.Upgrades.Defender.MaxLevel {
		t.Errorf("defender level = %d, want max %d", lvl, cfg.Upgrades.Defender.MaxLevel)
	}
	if !strings.Contains(g.Message(), "max level") {
		t.Errorf("Message() = %q, want max level notice", g.Message())
	}
}

func TestGameShopInsufficientFunds(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Battle.StartingMoney = 10
	g := New(cfg)
	g.Reset(testRuntime())

	g.Step(press(core.ActionUpgradeTower))
	if lvl := g.Session().Upgrades().TowerLevel(); lvl != 0 {
		t.Errorf("tower level = %d, want 0", lvl)
	}
	if g.Session().Wallet().Balance() != 10 {
		t.Errorf("balance changed on a failed purchase")
	}
	if !strings.Contains(g.Message(), "costs") {
		t.Errorf("Message() = %q, want a cost notice", g.Message())
	}
}

func TestGamePlaysWave(t *testing.T) {
	var hooked []WaveReport
	g := New(config.DefaultConfig(), WithWaveHook(func(s *wave.Session, r WaveReport) {
		if s.Wave() != r.Result.WaveIndex+1 {
			t.Errorf("hook saw session wave %d for result %d", s.Wave(), r.Result.WaveIndex)
		}
		hooked = append(hooked, r)
	}))
	g.Reset(testRuntime())

	res := playWave(t, g)
	if len(hooked) != 1 {
		t.Fatalf("hook called %d times, want 1", len(hooked))
	}
	r := hooked[0]
	if r.Result.WaveIndex != 1 || r.Result.EnemiesSpawned == 0 {
		t.Errorf("report = %+v", r.Result)
	}
	if g.LastWave() == nil || g.LastWave().Result != r.Result {
		t.Error("LastWave() does not match the hook report")
	}
	if g.Battle() == nil {
		t.Error("finished battle should stay visible until the next wave")
	}
	if g.Phase() == PhaseBattle {
		t.Error("phase should leave battle after completion")
	}
	if res.State.Wave != 1 {
		t.Errorf("State().Wave = %d, want 1", res.State.Wave)
	}
	if res.State.Score != r.Kills {
		t.Errorf("score = %d, want kills %d", res.State.Score, r.Kills)
	}
}

func TestGameUpgradesLockedDuringBattle(t *testing.T) {
	g := New(config.DefaultConfig())
	g.Reset(testRuntime())
	g.Step(press(core.ActionNextWave))

	g.Step(press(core.ActionUpgradeDefense))
	if g.Session().Upgrades().DefenderLevel() != 0 {
		t.Error("upgrade bought during battle")
	}
}

func TestGamePause(t *testing.T) {
	g := New(config.DefaultConfig())
	g.Reset(testRuntime())
	g.Step(press(core.ActionNextWave))
	g.Step(core.NewInputFrame())

	g.Step(press(core.ActionPause))
	before := g.Battle().Elapsed()
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Battle().Elapsed() != before {
		t.Error("battle advanced while paused")
	}
	if !g.State().Paused {
		t.Error("State().Paused should be set")
	}

	g.Step(press(core.ActionPause))
	g.Step(core.NewInputFrame())
	if g.Battle().Elapsed() <= before {
		t.Error("battle did not resume")
	}
}

func overrunConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Battle.Defender.Damage = 0
	for i := range cfg.Enemies {
		cfg.Enemies[i].TowerDamage = 10000
		cfg.Enemies[i].DamageToPlayer = 10000
		cfg.Enemies[i].MoveSpeed = 20
	}
	return cfg
}

func TestGameOverAndRestart(t *testing.T) {
	g := New(overrunConfig())
	g.Reset(testRuntime())
	playWave(t, g)

	if g.Phase() != PhaseOver || !g.State().GameOver {
		t.Fatalf("Phase() = %v, want game over", g.Phase())
	}

	g.Step(press(core.ActionNextWave))
	if g.Phase() != PhaseOver {
		t.Error("next wave should be ignored after game over")
	}

	old := g.Session().ID()
	g.Step(press(core.ActionRestart))
	if g.Phase() != PhaseShop {
		t.Errorf("Phase() after restart = %v, want shop", g.Phase())
	}
	if g.Session().ID() == old {
		t.Error("restart should start a new session")
	}
	if g.Session().Wave() != 1 || g.State().Score != 0 {
		t.Errorf("restart state = wave %d score %d", g.Session().Wave(), g.State().Score)
	}
}

func TestGameRestartKeepsRuntime(t *testing.T) {
	rc := testRuntime()
	rc.TickRate = 45
	g := New(overrunConfig())
	g.Reset(rc)
	g.Resize(100, 40)
	playWave(t, g)

	g.Step(press(core.ActionRestart))
	if g.Phase() != PhaseShop {
		t.Fatalf("Phase() after restart = %v, want shop", g.Phase())
	}
	if g.rc.TickRate != 45 || g.rc.ScreenW != 100 || g.rc.ScreenH != 40 {
		t.Errorf("runtime after restart = %+v, want 100x40 at 45", g.rc)
	}
	if g.dt != 1.0/45 {
		t.Errorf("dt = %v, want 1/45", g.dt)
	}
	if g.rc.Seed == rc.Seed {
		t.Error("restart should draw a new seed")
	}
}

func TestGameResumesSession(t *testing.T) {
	cfg := config.DefaultConfig()
	s := wave.NewSession(cfg, wave.WithSeed(5))
	s.Restore([]director.WaveResult{
		{WaveIndex: 1, StartingHealth: 100, HealthLost: 10, CombatDuration: 30, EnemiesSpawned: 6},
		{WaveIndex: 2, StartingHealth: 100, HealthLost: 20, CombatDuration: 40, EnemiesSpawned: 7},
	}, 1, 0, 500)

	g := New(cfg, WithSession(s))
	g.Reset(testRuntime())
	if g.Session() != s {
		t.Fatal("first Reset should use the resumed session")
	}
	if g.State().Wave != 2 {
		t.Errorf("State().Wave = %d, want 2", g.State().Wave)
	}
	if !strings.Contains(g.Message(), "wave 3") {
		t.Errorf("Message() = %q", g.Message())
	}

	g.Reset(testRuntime())
	if g.Session() == s {
		t.Error("second Reset should start fresh")
	}
}

func TestGameRender(t *testing.T) {
	g := New(config.DefaultConfig())
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Wave 1") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "@") {
		t.Error("defenders not drawn")
	}
	if !strings.Contains(screen.String(), "Next: enemies=") {
		t.Error("next wave preview not drawn")
	}

	g.Step(press(core.ActionNextWave))
	for i := 0; i < 90; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "Pattern") {
		t.Error("battle status line not drawn")
	}

	small := core.NewScreen(20, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Errorf("small screen = %q", small.String())
	}
}
