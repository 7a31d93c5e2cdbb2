package motion

import (
	"math"
	"testing"

	"github.com/tferrerm/unity-pac/internal/entities"
)

func TestAdvance(t *testing.T) {
	const hw = 100
	tests := []struct {
		name string
		pos  entities.Vec
		dir  entities.Direction
		want entities.Vec
	}{
		{"up", entities.Vec{X: 0, Y: 0}, entities.DirUp, entities.Vec{X: 0, Y: -5}},
		{"down", entities.Vec{X: 0, Y: 0}, entities.DirDown, entities.Vec{X: 0, Y: 5}},
		{"left", entities.Vec{X: 10, Y: 3}, entities.DirLeft, entities.Vec{X: 5, Y: 3}},
		{"right", entities.Vec{X: 10, Y: 3}, entities.DirRight, entities.Vec{X: 15, Y: 3}},
		{"left wraps", entities.Vec{X: -97, Y: 3}, entities.DirLeft, entities.Vec{X: 98, Y: 3}},
		{"right wraps", entities.Vec{X: 97, Y: 3}, entities.DirRight, entities.Vec{X: -98, Y: 3}},
		{"right wraps from edge", entities.Vec{X: hw, Y: 3}, entities.DirRight, entities.Vec{X: -95, Y: 3}},
		{"left lands on edge", entities.Vec{X: -95, Y: 3}, entities.DirLeft, entities.Vec{X: -hw, Y: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Advance(tc.pos, 50, tc.dir, 0.1, hw)
			if got != tc.want {
				t.Fatalf("Advance(%v, %v) = %v, want %v", tc.pos, tc.dir, got, tc.want)
			}
		})
	}
}

func TestWrapKeepsDistance(t *testing.T) {
	const hw = 100
	// 40 steps of 5 px is one lap of 2*hw.
	for _, dir := range []entities.Direction{entities.DirRight, entities.DirLeft} {
		pos := entities.Vec{X: 83}
		for i := 0; i < 40; i++ {
			pos = Advance(pos, 50, dir, 0.1, hw)
		}
		if math.Abs(pos.X-83) > 1e-9 {
			t.Errorf("%v: after a lap x = %v, want 83", dir, pos.X)
		}
	}
}

func TestAdvancePanicsOnNone(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for DirNone")
		}
	}()
	Advance(entities.Vec{}, 1, entities.DirNone, 1, 10)
}
