package spawn

import (
	"math"

	"github.com/vovakirdan/topdeck/internal/core"
)

// Defaults used by BuildPattern, which has no tempo or lane arguments.
const (
	DefaultBaseDelay   = 1.0
	DefaultSpawnPoints = 3

	minBaseDelay  = 0.05
	miniBossPause = 1.4 // delay factor after a mini-boss
)

// Instruction is one spawn in a wave plan.
type Instruction struct {
	Slot          int     // position in the plan
	SpawnPoint    int     // lane index
	Delay         float64 // seconds until the next instruction
	ForceElite    bool
	ForceMiniBoss bool
}

// Request describes a plan to build.
type Request struct {
	Pattern       PatternType
	Total         int
	EliteFraction float64 // share of the wave that should be elite, [0,1]
	EliteCount    int     // minimum elites
	MiniBossCount int     // exact mini-bosses, capped to Total
	BaseDelay     float64 // seconds
	SpawnPoints   int     // lanes
	Seed          int64
}

// BuildPattern builds a plan with the default tempo and lane count.
func BuildPattern(pattern PatternType, total int, eliteFraction float64, eliteCount, miniBossCount int, seed int64) []Instruction {
	return Build(Request{
		Pattern:       pattern,
		Total:         total,
		EliteFraction: eliteFraction,
		EliteCount:    eliteCount,
		MiniBossCount: miniBossCount,
		BaseDelay:     DefaultBaseDelay,
		SpawnPoints:   DefaultSpawnPoints,
		Seed:          seed,
	})
}

// Build returns exactly req.Total instructions. The same request always
// yields the same plan.
//
// A slot carries at most one of ForceElite and ForceMiniBoss. Mini-bosses are
// placed first, so the elite count is min(EliteTarget, Total-mini-bosses).
func Build(req Request) []Instruction {
	if req.Total <= 0 {
		return []Instruction{}
	}
	lanes := core.Max(1, req.SpawnPoints)
	baseDelay := math.Max(minBaseDelay, req.BaseDelay)

	plan := make([]Instruction, req.Total)
	for i := range plan {
		plan[i].Slot = i
	}

	rng := core.NewRNG(core.DeriveSeed(req.Seed, int64(req.Pattern)+1))
	layoutFor(req.Pattern).Place(plan, baseDelay, lanes, rng)

	miniBosses := core.Clamp(req.MiniBossCount, 0, len(plan))
	placeMiniBosses(plan, miniBosses, req.Pattern == Escort)

	elites := core.Min(EliteTarget(req.Total, req.EliteFraction, req.EliteCount), len(plan)-miniBosses)
	placeElites(plan, elites)

	return plan
}

// EliteTarget is the larger of the explicit count and the fraction of total.
func EliteTarget(total int, fraction float64, count int) int {
	byFraction := int(math.Ceil(core.Clamp01(fraction)*float64(total) - 1e-9))
	return core.Max(0, core.Max(count, byFraction))
}

// placeMiniBosses spreads mini-bosses evenly, ending each spacing interval.
// In an escort the last mini-boss closes the wave.
func placeMiniBosses(plan []Instruction, count int, escort bool) {
	if count <= 0 {
		return
	}
	n := len(plan)
	spacing := core.Max(1, n/(count+1))
	for i := 0; i < count; i++ {
		idx := core.Clamp(spacing*(i+1)-1, 0, n-1)
		if escort && i == count-1 {
			idx = n - 1
		}
		idx = freeSlot(plan, idx)
		plan[idx].ForceMiniBoss = true
		plan[idx].Delay *= miniBossPause
	}
}

// placeElites spreads elites evenly from the first slot, skipping mini-bosses.
func placeElites(plan []Instruction, count int) {
	if count <= 0 {
		return
	}
	n := len(plan)
	spacing := core.Max(1, n/(count+1))
	for i := 0; i < count; i++ {
		idx := freeSlot(plan, core.Clamp(spacing*i, 0, n-1))
		plan[idx].ForceElite = true
	}
}

// freeSlot returns the first unflagged slot at or after idx, wrapping around.
// Callers guarantee a free slot exists.
func freeSlot(plan []Instruction, idx int) int {
	n := len(plan)
	for k := 0; k < n; k++ {
		j := (idx + k) % n
		if !plan[j].ForceElite && !plan[j].ForceMiniBoss {
			return j
		}
	}
	return idx
}

// Count returns the number of elite and mini-boss instructions in a plan.
func Count(plan []Instruction) (elites, miniBosses int) {
	for _, in := range plan {
		if in.ForceElite {
			elites++
		}
		if in.ForceMiniBoss {
			miniBosses++
		}
	}
	return elites, miniBosses
}

// Duration returns the total of all delays in a plan.
func Duration(plan []Instruction) float64 {
	total := 0.0
	for _, in := range plan {
		total += in.Delay
	}
	return total
}
