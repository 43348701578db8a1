package algorithms_test

import (
	"github.com/mihai-snyk/shelfopt/pkg/algorithms"
	"github.com/mihai-snyk/shelfopt/pkg/framework"
)

// scriptedRand replays fixed draws and falls back to a seeded stream once
// the script is exhausted.
type scriptedRand struct {
	ints     []int
	floats   []float64
	fallback algorithms.Rand
}

func newScriptedRand(ints []int, floats []float64) *scriptedRand {
	return &scriptedRand{ints: ints, floats: floats, fallback: algorithms.NewRand(1)}
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return s.fallback.Intn(n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return s.fallback.Float64()
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// workedCatalog is the two-item shelf used across the scenario tests
func workedCatalog() framework.Catalog {
	return framework.Catalog{
		{ID: 1, Name: "crate", Area: 2, Gain: 5, Stock: 3},
		{ID: 2, Name: "box", Area: 1, Gain: 2, Stock: 5},
	}
}

// warehouseCatalog mirrors the default catalog of the web client
func warehouseCatalog() framework.Catalog {
	return framework.Catalog{
		{ID: 1, Name: "Mini fridge", Area: 4, Gain: 1200, Stock: 5},
		{ID: 2, Name: "TV 42\"", Area: 3, Gain: 800, Stock: 10},
		{ID: 3, Name: "Fan", Area: 2, Gain: 300, Stock: 12},
		{ID: 4, Name: "Large fridge", Area: 9, Gain: 2400, Stock: 3},
	}
}
