package maze

import (
	"fmt"

	"github.com/nathoo/cavern/types"
)

// Placement asks for a feature to be spread over the caves. Percent is the
// share of caves to receive it; the Wumpus ignores Percent and is always
// placed exactly once. Exclusive lists kinds the feature may not share a cave
// with, in addition to the Wumpus.
type Placement struct {
	Kind      types.FeatureKind
	Percent   int
	Exclusive []types.FeatureKind
}

// Target returns how many of n caves receive the placement, rounded half up.
func (p Placement) Target(n int) int {
	if p.Kind == types.Wumpus {
		return 1
	}
	return (2*n*p.Percent + 100) / 200
}

func (p Placement) admits(f types.FeatureSet) bool {
	if f.Has(types.Wumpus) || f.Has(p.Kind) {
		return false
	}
	for _, k := range p.Exclusive {
		if f.Has(k) {
			return false
		}
	}
	return true
}

// PlaceFeatures assigns every placement to randomly chosen caves, the Wumpus
// first. A collision is resolved by drawing again.
func PlaceFeatures(rooms []Room, caves []int, placements []Placement, src Source) error {
	if len(caves) == 0 {
		return fmt.Errorf("%w: maze has no caves", ErrInvalidArgument)
	}
	ordered := make([]Placement, 0, len(placements))
	for _, p := range placements {
		if p.Kind == types.Wumpus {
			ordered = append(ordered, p)
		}
	}
	for _, p := range placements {
		if p.Kind != types.Wumpus {
			ordered = append(ordered, p)
		}
	}

	for _, p := range ordered {
		if p.Kind != types.Wumpus && (p.Percent < 0 || p.Percent > 100) {
			return fmt.Errorf("%w: %s percentage must be 0-100, got %d", ErrInvalidArgument, p.Kind, p.Percent)
		}
		target := p.Target(len(caves))
		eligible := 0
		for _, id := range caves {
			if p.admits(rooms[id].Features) {
				eligible++
			}
		}
		if target > eligible {
			return fmt.Errorf("%w: %d caves wanted for %s but only %d are free",
				ErrInvalidArgument, target, p.Kind, eligible)
		}
		for placed := 0; placed < target; {
			id := caves[src.Intn(len(caves))]
			if p.Kind == types.Wumpus || p.admits(rooms[id].Features) {
				rooms[id].Features[p.Kind] = true
				placed++
			}
		}
	}
	return nil
}

// VerifyFeatures recounts every placed kind against its target.
func VerifyFeatures(rooms []Room, caves []int, placements []Placement) error {
	for _, p := range placements {
		got := 0
		for _, id := range caves {
			if rooms[id].Features.Has(p.Kind) {
				got++
			}
		}
		if want := p.Target(len(caves)); got != want {
			return fmt.Errorf("%w: %d caves hold %s, want %d", ErrInvariant, got, p.Kind, want)
		}
	}
	for _, r := range rooms {
		if !r.IsCave() && r.Features != (types.FeatureSet{}) {
			return fmt.Errorf("%w: tunnel %d holds features", ErrInvariant, r.ID)
		}
	}
	return nil
}
