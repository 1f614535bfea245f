package defense

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/sim"
	"github.com/vovakirdan/topdeck/internal/upgrade"
	"github.com/vovakirdan/topdeck/internal/variant"
)

const (
	hudHeight  = 3 // HUD rows above the lanes
	laneStride = 2 // rows per lane including the spacer
	footer     = 4 // rows below the lanes
	minWidth   = 48
	fieldLeft  = 3
)

// MinSize returns the smallest screen the game can draw on.
func (g *Game) MinSize() (w, h int) {
	return minWidth, hudHeight + core.Max(1, g.cfg.Battle.Lanes)*laneStride + footer
}

// Render draws the HUD, the lanes and the status lines.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	minW, minH := g.MinSize()
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", minW, minH))
		return
	}

	g.drawHUD(dst)
	g.drawLanes(dst)
	g.drawFooter(dst)
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.session
	up := s.Upgrades()

	health, maxHealth := up.TowerHealth(), up.TowerHealth()
	if g.battle != nil {
		health, maxHealth = g.battle.Health(), g.battle.StartHealth()
	}
	if g.phase == PhaseOver && g.last != nil {
		health = 0
	}

	x := 1
	x = drawPair(dst, x, 0, "Wave ", fmt.Sprint(s.Wave()), core.ColorBrightWhite)
	x = drawPair(dst, x, 0, "HP ", fmt.Sprintf("%d/%d", health, maxHealth), healthColor(health, maxHealth))
	x = drawPair(dst, x, 0, "$", fmt.Sprint(s.Wallet().Balance()), core.ColorBrightYellow)
	drawPair(dst, x, 0, "Kills ", fmt.Sprint(g.kills), core.ColorBrightWhite)

	x = 1
	x = drawPair(dst, x, 1, "Defender ", levelText(up.DefenderLevel(), up.DefenderMaxLevel(), up.Cost(upgrade.Defender)), core.ColorBrightGreen)
	x = drawPair(dst, x, 1, "Tower ", levelText(up.TowerLevel(), up.TowerMaxLevel(), up.Cost(upgrade.Tower)), core.ColorBrightCyan)
	drawPair(dst, x, 1, "Stress ", fmt.Sprintf("%.2f", s.Director().Stress()), core.ColorGray)

	dst.DrawHLine(0, 2, dst.Width(), '─')
}

// drawPair draws "label value" and returns the x after it plus a gap.
func drawPair(dst *core.Screen, x, y int, label, value string, c core.Color) int {
	dst.DrawTextColored(x, y, label, core.ColorGray)
	x += len([]rune(label))
	dst.DrawTextColored(x, y, value, c)
	return x + len([]rune(value)) + 3
}

func levelText(level, maxLevel, cost int) string {
	if level >= maxLevel {
		return fmt.Sprintf("Lv %d/%d max", level, maxLevel)
	}
	return fmt.Sprintf("Lv %d/%d ($%d)", level, maxLevel, cost)
}

func healthColor(health, maxHealth int) core.Color {
	switch {
	case maxHealth <= 0 || health*4 <= maxHealth:
		return core.ColorBrightRed
	case health*2 <= maxHealth:
		return core.ColorYellow
	default:
		return core.ColorBrightGreen
	}
}

// laneX maps a lane position onto the screen.
func (g *Game) laneX(dst *core.Screen, pos float64) int {
	width := dst.Width() - fieldLeft*2
	length := g.cfg.Battle.LaneLength
	if length <= 0 {
		return fieldLeft
	}
	f := core.Clamp01(pos / length)
	return fieldLeft + int(f*float64(width-1)+0.5)
}

func (g *Game) drawLanes(dst *core.Screen) {
	lanes := core.Max(1, g.cfg.Battle.Lanes)
	right := dst.Width() - fieldLeft
	for lane := 0; lane < lanes; lane++ {
		y := hudHeight + lane*laneStride
		dst.SetColored(fieldLeft-2, y, '>', core.ColorGray)
		for x := fieldLeft; x < right; x++ {
			dst.SetColored(x, y, '·', core.ColorGray)
		}
		dst.SetColored(right, y, '▐', core.ColorBrightCyan)
	}

	if g.battle == nil {
		// Show where the defenders will stand.
		for lane := 0; lane < lanes; lane++ {
			y := hudHeight + lane*laneStride
			dst.SetColored(g.laneX(dst, g.cfg.Battle.Defender.Position), y, '@', core.ColorBrightGreen)
		}
		return
	}

	for _, d := range g.battle.Defenders() {
		y := hudHeight + d.Lane*laneStride
		x := g.laneX(dst, d.Pos)
		if d.Alive() {
			dst.SetColored(x, y, '@', defenderColor(d))
		} else {
			dst.SetColored(x, y, 'x', core.ColorGray)
		}
	}
	for _, e := range g.battle.Enemies() {
		y := hudHeight + e.Lane*laneStride
		dst.SetColored(g.laneX(dst, e.Pos), y, enemyGlyph(e), enemyColor(e.Variant))
	}
}

func defenderColor(d *sim.Defender) core.Color {
	if d.MaxHealth > 0 && d.Health*2 < d.MaxHealth {
		return core.ColorYellow
	}
	return core.ColorBrightGreen
}

func enemyGlyph(e *sim.Enemy) rune {
	glyph := e.Variant.Definition.Glyph
	if glyph == "" {
		glyph = "e"
	}
	r := []rune(glyph)[0]
	if e.Variant.Category != variant.Normal {
		r = []rune(strings.ToUpper(string(r)))[0]
	}
	return r
}

// enemyColor shows the category first and the variant tint otherwise.
func enemyColor(v variant.Variant) core.Color {
	switch v.Category {
	case variant.MiniBoss:
		return core.ColorBrightMagenta
	case variant.Elite:
		return core.ColorOrange
	}
	return v.Tint.Nearest()
}

func (g *Game) drawFooter(dst *core.Screen) {
	lanes := core.Max(1, g.cfg.Battle.Lanes)
	y := hudHeight + lanes*laneStride
	dst.DrawHLine(0, y, dst.Width(), '─')

	switch {
	case g.battle != nil && g.phase == PhaseBattle:
		b := g.battle
		t := b.Plan().Tuning
		line := fmt.Sprintf("Pattern %s  Score %.2f  Incoming %d  On field %d  %.1fs",
			t.Pattern, t.DifficultyScore, b.Pending(), len(b.Enemies()), b.Elapsed())
		if g.paused {
			line += "  PAUSED"
		}
		dst.DrawTextColored(1, y+1, line, core.ColorWhite)
		dst.DrawTextColored(1, y+2, b.Plan().Telemetry, core.ColorGray)
	default:
		s := g.session
		next := s.Director().Evaluate(s.Wave(), s.Upgrades().DefenderLevel(), s.Upgrades().TowerLevel())
		dst.DrawTextColored(1, y+1, "Next: "+next.String(), core.ColorWhite)
		if g.last != nil {
			dst.DrawTextColored(1, y+2, g.last.Plan.Telemetry, core.ColorGray)
		}
	}

	msgColor := core.ColorBrightWhite
	if g.phase == PhaseOver {
		msgColor = core.ColorBrightRed
	}
	dst.DrawTextColored(1, y+3, g.message, msgColor)
}
