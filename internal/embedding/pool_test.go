package embedding

import (
	"reflect"
	"testing"
)

func TestMeanPool(t *testing.T) {
	// three tokens of two dims; the last is padding
	states := []float32{
		1, 2,
		3, 6,
		100, 100,
	}
	got := meanPool(states, []int64{1, 1, 0}, 2)
	if want := []float32{2, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("meanPool = %v, want %v", got, want)
	}
}

func TestMeanPool_emptyMask(t *testing.T) {
	got := meanPool([]float32{1, 2, 3, 4}, []int64{0, 0}, 2)
	if want := []float32{0, 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("meanPool = %v, want %v", got, want)
	}
}
