package mdrcluster

import "gonum.org/v1/gonum/mat"

// Point is a document's 2-D projection.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ProjectPCA projects every document onto the first two principal
// components of the centered TF-IDF matrix, computed by singular value
// decomposition. Degenerate corpora (fewer than two documents, empty
// vocabulary, or zero variance everywhere) yield the trivial all-origin
// projection instead of failing. Axis orientation is whatever the
// decomposition produces, which is reproducible for identical input.
func ProjectPCA(vectors []WeightedVector, vocabSize int) []Point {
	n := len(vectors)
	points := make([]Point, n)
	if n < 2 || vocabSize == 0 {
		return points
	}

	// Dense centered matrix: column means subtracted from the sparse
	// TF-IDF weights.
	means := make([]float64, vocabSize)
	for _, vec := range vectors {
		for col, w := range vec {
			means[col] += w
		}
	}
	for col := range means {
		means[col] /= float64(n)
	}

	centered := mat.NewDense(n, vocabSize, nil)
	for i, vec := range vectors {
		for col := 0; col < vocabSize; col++ {
			centered.Set(i, col, vec[col]-means[col])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return points
	}

	var v mat.Dense
	svd.VTo(&v)

	// Scores for the leading components: centered * V[:, :dims].
	dims := min(2, vocabSize, n)
	var scores mat.Dense
	scores.Mul(centered, v.Slice(0, vocabSize, 0, dims))

	for i := range points {
		points[i].X = scores.At(i, 0)
		if dims > 1 {
			points[i].Y = scores.At(i, 1)
		}
	}
	return points
}
