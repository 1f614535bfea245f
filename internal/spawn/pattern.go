// Package spawn plans the order, lanes and tempo of a wave's spawns.
package spawn

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/topdeck/internal/core"
)

// PatternType selects how spawns are spread over lanes and time.
type PatternType int

const (
	Alternating PatternType = iota // round-robin over lanes at a steady tempo
	Burst                          // tight groups on one lane with a breather after each
	Focused                        // mostly one lane with a slower flank
	Surround                       // fast sweep over every lane, pause per cycle
	Escort                         // a quick escort group ahead of the main body
)

var patternNames = [...]string{"alternating", "burst", "focused", "surround", "escort"}

// AllPatterns lists every pattern in escalation order.
var AllPatterns = []PatternType{Alternating, Burst, Focused, Surround, Escort}

// String returns the pattern name.
func (p PatternType) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return fmt.Sprintf("pattern(%d)", int(p))
	}
	return patternNames[p]
}

// ParsePattern converts a name to a pattern type.
func ParsePattern(s string) (PatternType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range patternNames {
		if s == name {
			return PatternType(i), nil
		}
	}
	return Alternating, fmt.Errorf("spawn: unknown pattern %q", s)
}

// AggressionOffset is added to the difficulty score to get the pattern aggression.
func (p PatternType) AggressionOffset() float64 {
	switch p {
	case Burst:
		return 0.2
	case Focused:
		return 0.15
	case Surround:
		return 0.3
	case Escort:
		return 0.4
	default:
		return 0
	}
}

// SelectPattern maps a difficulty score to a pattern. Scores in [0.25, 0.45)
// pick alternating or burst with a coin flip from rng.
func SelectPattern(score float64, rng *core.RNG) PatternType {
	switch {
	case score < 0.25:
		return Alternating
	case score < 0.45:
		if rng.Float64() > 0.5 {
			return Alternating
		}
		return Burst
	case score < 0.65:
		return Focused
	case score < 0.85:
		return Surround
	default:
		return Escort
	}
}
