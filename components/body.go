package components

import (
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/traits"
)

// Traits holds the upgradeable features of an animal.
type Traits struct {
	Speed       traits.Feature
	Detection   traits.Feature
	MaxFullness traits.Feature
	Attack      traits.Feature
	Puberty     traits.Feature
}

// DefaultTraits returns the starting features for a freshly spawned animal.
func DefaultTraits(cfg *config.Config) Traits {
	return Traits{
		Speed:       traits.NewFeature(cfg.Costs.Speed, cfg.Traits.Speed),
		Detection:   traits.NewFeature(cfg.Costs.Detection, cfg.Traits.Detection),
		MaxFullness: traits.NewFeature(cfg.Costs.MaxFullness, cfg.Traits.MaxFullness),
		Attack:      traits.NewFeature(cfg.Costs.Attack, cfg.Traits.Attack),
		Puberty:     traits.NewFeature(cfg.Costs.Puberty, cfg.Traits.Puberty),
	}
}
