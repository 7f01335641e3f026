package services

import "math"

// l2Normalize scales the vector to unit length in place and returns it.
// A zero vector is returned unchanged.
func l2Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}

	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

// l2NormalizeAll normalizes every vector in the batch in place.
func l2NormalizeAll(vecs [][]float32) [][]float32 {
	for i := range vecs {
		vecs[i] = l2Normalize(vecs[i])
	}
	return vecs
}
