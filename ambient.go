package heppi

import (
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Region is one row of the ambient placement table. Bounds are fractions of
// the canvas (0..1 on both axes, origin top-left); Weight is the relative
// chance that a burst lands inside it.
type Region struct {
	Name   string  `yaml:"name"`
	Bounds Rect    `yaml:"bounds"`
	Weight float64 `yaml:"weight"`
}

// DefaultRegions favours the upper flanks so ambient bursts frame the
// centre of the page rather than covering it.
func DefaultRegions() []Region {
	return []Region{
		{Name: "upper-left", Bounds: Rect{X: 0.05, Y: 0.08, Width: 0.3, Height: 0.3}, Weight: 0.35},
		{Name: "upper-right", Bounds: Rect{X: 0.65, Y: 0.08, Width: 0.3, Height: 0.3}, Weight: 0.35},
		{Name: "center", Bounds: Rect{X: 0.3, Y: 0.05, Width: 0.4, Height: 0.25}, Weight: 0.2},
		{Name: "low-band", Bounds: Rect{X: 0.1, Y: 0.38, Width: 0.8, Height: 0.15}, Weight: 0.1},
	}
}

// unitSquare is the whole canvas in fractional coordinates.
var unitSquare = Rect{Width: 1, Height: 1}

func validateRegions(regions []Region) error {
	if len(regions) == 0 {
		return fmt.Errorf("%w: ambient.regions: at least one region required", ErrInvalidConfig)
	}
	var total float64
	for i, r := range regions {
		if r.Weight < 0 {
			return fmt.Errorf("%w: ambient.regions[%d] %q: negative weight %v", ErrInvalidConfig, i, r.Name, r.Weight)
		}
		b := r.Bounds
		if b.Width < 0 || b.Height < 0 || !unitSquare.Contains(b.X, b.Y) || !unitSquare.Contains(b.X+b.Width, b.Y+b.Height) {
			return fmt.Errorf("%w: ambient.regions[%d] %q: bounds %v outside the unit square", ErrInvalidConfig, i, r.Name, b)
		}
		total += r.Weight
	}
	if total <= 0 {
		return fmt.Errorf("%w: ambient.regions: weights sum to zero", ErrInvalidConfig)
	}
	return nil
}

// regionTable samples regions in proportion to their weights.
type regionTable struct {
	regions []Region
	dist    distuv.Categorical
	rng     *rand.Rand
}

func newRegionTable(regions []Region, rng *rand.Rand) *regionTable {
	w := make([]float64, len(regions))
	for i, r := range regions {
		w[i] = r.Weight
	}
	return &regionTable{
		regions: regions,
		dist:    distuv.NewCategorical(w, rng),
		rng:     rng,
	}
}

// Prob returns the normalized probability of region i.
func (t *regionTable) Prob(i int) float64 {
	return t.dist.Prob(float64(i))
}

// pick draws a region index.
func (t *regionTable) pick() int {
	return int(t.dist.Rand())
}

// point draws a region, then a uniform point inside it, in pixels.
func (t *regionTable) point(w, h float64) (int, Vec2) {
	i := t.pick()
	return i, t.regions[i].Bounds.Scale(w, h).RandomPoint(t.rng)
}

// maxAge is the age past which a burst is pruned.
func maxAge(b Burst, pruneAt float64) time.Duration {
	return time.Duration(float64(b.Duration) * pruneAt)
}

// pruneBursts returns, in order, the bursts whose age at now has not passed
// pruneAt of their lifetime. The input slice is not modified.
func pruneBursts(bursts []Burst, now time.Duration, pruneAt float64) []Burst {
	kept := make([]Burst, 0, len(bursts))
	for _, b := range bursts {
		if b.Age(now) <= maxAge(b, pruneAt) {
			kept = append(kept, b)
		}
	}
	return kept
}
