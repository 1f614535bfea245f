package sim

import (
	"github.com/vovakirdan/topdeck/internal/registry"
	"github.com/vovakirdan/topdeck/internal/upgrade"
)

// Profile models a player: how well their defenders aim and what they buy
// between waves.
type Profile interface {
	ID() string
	Accuracy() float64
	// Purchases returns the tracks to try buying, in order, before a wave.
	Purchases(up *upgrade.State) []upgrade.Track
}

var profiles = registry.New[Profile]("player profile")

func init() {
	profiles.Register("greedy", "Buys every upgrade it can afford, defenders first", func() Profile {
		return &basicProfile{id: "greedy", accuracy: 0.9, order: []upgrade.Track{upgrade.Defender, upgrade.Tower}}
	})
	profiles.Register("turtle", "Fortifies the tower before the defenders", func() Profile {
		return &basicProfile{id: "turtle", accuracy: 0.85, order: []upgrade.Track{upgrade.Tower, upgrade.Defender}}
	})
	profiles.Register("frugal", "Never spends money", func() Profile {
		return &basicProfile{id: "frugal", accuracy: 0.85}
	})
	profiles.Register("novice", "Misses often and never upgrades", func() Profile {
		return &basicProfile{id: "novice", accuracy: 0.45}
	})
}

// Profiles lists the registered player profiles.
func Profiles() []registry.Info {
	return profiles.List()
}

// NewProfile creates a registered profile by id.
func NewProfile(id string) (Profile, error) {
	return profiles.Create(id)
}

type basicProfile struct {
	id       string
	accuracy float64
	order    []upgrade.Track
}

func (p *basicProfile) ID() string        { return p.id }
func (p *basicProfile) Accuracy() float64 { return p.accuracy }

func (p *basicProfile) Purchases(up *upgrade.State) []upgrade.Track {
	var out []upgrade.Track
	for _, t := range p.order {
		if up.CanUpgrade(t) {
			out = append(out, t)
		}
	}
	return out
}
