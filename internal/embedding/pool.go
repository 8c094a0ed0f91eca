package embedding

// meanPool averages the rows of states (seqLen x dims, row-major) whose mask is set.
func meanPool(states []float32, mask []int64, dims int) []float32 {
	vec := make([]float32, dims)
	var n float32
	for tok, m := range mask {
		if m == 0 {
			continue
		}
		row := states[tok*dims : (tok+1)*dims]
		for d, v := range row {
			vec[d] += v
		}
		n++
	}
	if n > 0 {
		for d := range vec {
			vec[d] /= n
		}
	}
	return vec
}
