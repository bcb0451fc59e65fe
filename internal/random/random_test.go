package random

import (
	"math/rand"
	"testing"
)

func TestRangeBounds(t *testing.T) {
	src := FromRand(rand.New(rand.NewSource(42)))
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := src.Range(2, 5)
		if v < 2 || v > 5 {
			t.Fatalf("Range(2, 5) returned %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected all 4 values to appear, got %v", seen)
	}
}

func TestPercentChancePanicsOutsideRange(t *testing.T) {
	src := New(1)
	for _, p := range []int{0, 100, -3} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("PercentChance(%d) should panic", p)
				}
			}()
			src.PercentChance(p)
		}()
	}
}

func TestSameSeedSameDraws(t *testing.T) {
	a := New(777)
	b := New(777)
	for i := 0; i < 200; i++ {
		if a.Range(0, 1000) != b.Range(0, 1000) {
			t.Fatalf("draw %d diverged", i)
		}
	}
}

func TestWeightedSkipsZeroWeights(t *testing.T) {
	src := New(9)
	weights := []float64{0, 3, 0, 1}
	for i := 0; i < 500; i++ {
		idx := src.Weighted(weights)
		if idx != 1 && idx != 3 {
			t.Fatalf("Weighted picked zero-weight index %d", idx)
		}
	}
	if got := src.Weighted([]float64{0, 0}); got != -1 {
		t.Errorf("Weighted with no positive weight = %d, want -1", got)
	}
	if got := src.WeightedInt([]int{0, 0, 5}); got != 2 {
		t.Errorf("WeightedInt = %d, want 2", got)
	}
}

func TestParseDice(t *testing.T) {
	tests := []struct {
		expr     string
		min, max int
	}{
		{"d6", 1, 6},
		{"2d4+1", 3, 9},
		{"d4-1", 0, 3},
		{"3d6+d4", 4, 22},
		{"5+d6", 0, 0},
		{"D8", 1, 8},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			d, err := ParseDice(tt.expr)
			if tt.min == 0 && tt.max == 0 {
				if err == nil {
					t.Fatalf("expected error for %q", tt.expr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDice(%q): %v", tt.expr, err)
			}
			if d.Min() != tt.min || d.Max() != tt.max {
				t.Errorf("%q range = [%d, %d], want [%d, %d]", tt.expr, d.Min(), d.Max(), tt.min, tt.max)
			}
		})
	}
}

func TestParseDiceRejects(t *testing.T) {
	bad := []string{"", "d", "0d6", "d06", "2d6+d6", "d4-2", "d6+", "+d6", "2d6-d4", "d6x", "3+d6"}
	for _, expr := range bad {
		if _, err := ParseDice(expr); err == nil {
			t.Errorf("ParseDice(%q) should fail", expr)
		}
	}
}

func TestRollStaysInRange(t *testing.T) {
	src := New(31337)
	for i := 0; i < 500; i++ {
		v, err := src.Roll("2d2+2")
		if err != nil {
			t.Fatalf("Roll: %v", err)
		}
		if v < 4 || v > 6 {
			t.Fatalf("2d2+2 rolled %d", v)
		}
	}
}
