package utils

import (
	"math"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	x := []float32{3, 4}
	NormalizeL2(x)
	if math.Abs(float64(x[0])-0.6) > 1e-6 || math.Abs(float64(x[1])-0.8) > 1e-6 {
		t.Errorf("got %v, want [0.6 0.8]", x)
	}
	if n := L2Norm(x); math.Abs(n-1) > 1e-6 {
		t.Errorf("norm after normalize = %f", n)
	}
}

func TestNormalizeL2_zero(t *testing.T) {
	x := []float32{0, 0, 0}
	NormalizeL2(x)
	for _, v := range x {
		if v != 0 {
			t.Fatalf("zero vector changed: %v", x)
		}
	}
}
