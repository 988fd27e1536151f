package mdrcluster

import "math"

// CosineDistanceMatrix computes the symmetric pairwise cosine dissimilarity
// 1 - (vi . vj)/(|vi| |vj|) for every unordered document pair. When either
// vector has zero norm (an empty-token narrative) the pair's distance is the
// maximum 1: a document with no usable content is maximally dissimilar from
// everything. The diagonal is always exactly 0.
func CosineDistanceMatrix(vectors []WeightedVector) [][]float64 {
	n := len(vectors)

	norms := make([]float64, n)
	for i, vec := range vectors {
		sum := 0.0
		for _, w := range vec {
			sum += w * w
		}
		norms[i] = math.Sqrt(sum)
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var d float64
			if norms[i] == 0 || norms[j] == 0 {
				d = 1.0
			} else {
				d = 1.0 - dotSparse(vectors[i], vectors[j])/(norms[i]*norms[j])
				// Clamp floating-point drift back into [0,1].
				if d < 0 {
					d = 0
				} else if d > 1 {
					d = 1
				}
			}
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist
}

// dotSparse iterates the smaller of the two sparse vectors.
func dotSparse(a, b WeightedVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	dot := 0.0
	for col, w := range a {
		dot += w * b[col]
	}
	return dot
}
