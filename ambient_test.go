package heppi

import (
	"errors"
	"testing"
	"time"
)

func TestRegionTableOnlyPicksWeightedRegions(t *testing.T) {
	regions := []Region{
		{Name: "never", Bounds: Rect{X: 0, Y: 0, Width: 0.1, Height: 0.1}, Weight: 0},
		{Name: "left", Bounds: Rect{X: 0, Y: 0.5, Width: 0.5, Height: 0.5}, Weight: 3},
		{Name: "right", Bounds: Rect{X: 0.5, Y: 0, Width: 0.5, Height: 0.5}, Weight: 1},
	}
	table := newRegionTable(regions, newRand(8))
	assertNear(t, "Prob(0)", table.Prob(0), 0)
	assertNear(t, "Prob(1)", table.Prob(1), 0.75)
	assertNear(t, "Prob(2)", table.Prob(2), 0.25)

	counts := make([]int, len(regions))
	const draws = 4000
	for i := 0; i < draws; i++ {
		idx, p := table.point(800, 600)
		counts[idx]++
		if !regions[idx].Bounds.Scale(800, 600).Contains(p.X, p.Y) {
			t.Fatalf("point %v outside region %q", p, regions[idx].Name)
		}
	}
	if counts[0] != 0 {
		t.Errorf("zero-weight region picked %d times", counts[0])
	}
	if share := float64(counts[1]) / draws; share < 0.7 || share > 0.8 {
		t.Errorf("left share = %.3f, want about 0.75", share)
	}
}

func TestDefaultRegionsValidate(t *testing.T) {
	if err := validateRegions(DefaultRegions()); err != nil {
		t.Fatalf("default regions: %v", err)
	}
}

func TestValidateRegionsAcceptsFullCanvas(t *testing.T) {
	full := []Region{{Name: "all", Bounds: Rect{Width: 1, Height: 1}, Weight: 1}}
	if err := validateRegions(full); err != nil {
		t.Errorf("validateRegions(full canvas) = %v, want nil", err)
	}
}

func TestValidateRegionsRejects(t *testing.T) {
	tests := map[string][]Region{
		"empty":         nil,
		"negative":      {{Name: "a", Bounds: Rect{Width: 0.5, Height: 0.5}, Weight: -1}},
		"zero sum":      {{Name: "a", Bounds: Rect{Width: 0.5, Height: 0.5}}},
		"outside":       {{Name: "a", Bounds: Rect{X: 0.8, Width: 0.5, Height: 0.5}, Weight: 1}},
		"left of zero":  {{Name: "a", Bounds: Rect{X: -0.1, Width: 0.5, Height: 0.5}, Weight: 1}},
		"negative size": {{Name: "a", Bounds: Rect{X: 0.5, Y: 0.5, Width: -0.2, Height: 0.1}, Weight: 1}},
	}
	for name, regions := range tests {
		if err := validateRegions(regions); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: err = %v, want ErrInvalidConfig", name, err)
		}
	}
}

func TestPruneBursts(t *testing.T) {
	bursts := []Burst{
		{ID: 1, Start: 0, Duration: time.Second},
		{ID: 2, Start: 700 * time.Millisecond, Duration: time.Second},
		{ID: 3, Start: 900 * time.Millisecond, Duration: time.Second},
	}
	kept := pruneBursts(bursts, 1600*time.Millisecond, 1)
	if len(kept) != 2 || kept[0].ID != 2 || kept[1].ID != 3 {
		t.Errorf("kept = %v, want ids [2 3]", ids(kept))
	}
	kept = pruneBursts(bursts, 1600*time.Millisecond, 0.75)
	if len(kept) != 1 || kept[0].ID != 3 {
		t.Errorf("pruneAt 0.75: kept = %v, want ids [3]", ids(kept))
	}
	if len(bursts) != 3 || bursts[0].ID != 1 {
		t.Error("pruneBursts modified its input")
	}
}

func TestPruneBurstsKeepsExactBoundary(t *testing.T) {
	b := []Burst{{ID: 1, Start: 0, Duration: time.Second}}
	if kept := pruneBursts(b, time.Second, 1); len(kept) != 1 {
		t.Error("burst at exactly its max age was pruned")
	}
}

func ids(bursts []Burst) []int {
	out := make([]int, len(bursts))
	for i, b := range bursts {
		out[i] = b.ID
	}
	return out
}
