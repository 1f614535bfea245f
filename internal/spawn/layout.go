package spawn

import (
	"github.com/vovakirdan/topdeck/internal/core"
	"github.com/vovakirdan/topdeck/internal/registry"
)

// Layout assigns lanes and delays to a plan whose slots are already sized.
// Layouts never touch the elite or mini-boss flags.
type Layout interface {
	Type() PatternType
	Place(plan []Instruction, baseDelay float64, lanes int, rng *core.RNG)
}

var layouts = registry.New[Layout]("spawn pattern")

func init() {
	layouts.Register(Alternating.String(), "Alternating lanes, steady tempo", func() Layout { return alternatingLayout{} })
	layouts.Register(Burst.String(), "Bursts of 2-4 on one lane", func() Layout { return burstLayout{} })
	layouts.Register(Focused.String(), "Main lane with a slower flank", func() Layout { return focusedLayout{} })
	layouts.Register(Surround.String(), "Fast sweep over every lane", func() Layout { return surroundLayout{} })
	layouts.Register(Escort.String(), "Escort group ahead of the main body", func() Layout { return escortLayout{} })
}

// Patterns lists the registered layouts.
func Patterns() []registry.Info {
	return layouts.List()
}

func layoutFor(p PatternType) Layout {
	l, err := layouts.Create(p.String())
	if err != nil {
		return alternatingLayout{}
	}
	return l
}

type alternatingLayout struct{}

func (alternatingLayout) Type() PatternType { return Alternating }

func (alternatingLayout) Place(plan []Instruction, baseDelay float64, lanes int, _ *core.RNG) {
	for i := range plan {
		plan[i].SpawnPoint = i % lanes
		plan[i].Delay = baseDelay
	}
}

type burstLayout struct{}

func (burstLayout) Type() PatternType { return Burst }

func (burstLayout) Place(plan []Instruction, baseDelay float64, lanes int, rng *core.RNG) {
	i := 0
	for i < len(plan) {
		size := core.Clamp(rng.IntRange(2, 5), 1, len(plan)-i)
		lane := rng.Intn(lanes)
		for j := 0; j < size; j++ {
			delay := baseDelay * 0.4
			if j == size-1 {
				delay = baseDelay * 1.3
			}
			plan[i].SpawnPoint = lane
			plan[i].Delay = delay
			i++
		}
	}
}

type focusedLayout struct{}

func (focusedLayout) Type() PatternType { return Focused }

func (focusedLayout) Place(plan []Instruction, baseDelay float64, lanes int, rng *core.RNG) {
	main := rng.Intn(lanes)
	flank := (main + rng.IntRange(1, lanes)) % lanes
	for i := range plan {
		if rng.Float64() > 0.35 {
			plan[i].SpawnPoint = main
			plan[i].Delay = baseDelay * 0.85
		} else {
			plan[i].SpawnPoint = flank
			plan[i].Delay = baseDelay * 1.1
		}
	}
}

type surroundLayout struct{}

func (surroundLayout) Type() PatternType { return Surround }

func (surroundLayout) Place(plan []Instruction, baseDelay float64, lanes int, _ *core.RNG) {
	for i := range plan {
		plan[i].SpawnPoint = i % lanes
		if (i+1)%lanes == 0 {
			plan[i].Delay = baseDelay * 1.4
		} else {
			plan[i].Delay = baseDelay * 0.6
		}
	}
}

type escortLayout struct{}

func (escortLayout) Type() PatternType { return Escort }

func (escortLayout) Place(plan []Instruction, baseDelay float64, lanes int, _ *core.RNG) {
	group := escortGroupSize(len(plan))
	for i := range plan {
		plan[i].SpawnPoint = i % lanes
		switch {
		case i < group:
			plan[i].Delay = baseDelay * 0.75
		case i == group:
			plan[i].Delay = baseDelay * 1.5
		default:
			plan[i].Delay = baseDelay * 1.1
		}
	}
}

func escortGroupSize(total int) int {
	return core.Clamp(total/3, 2, 6)
}
