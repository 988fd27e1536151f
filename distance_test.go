package mdrcluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distMatrixFor(t *testing.T, texts []string) [][]float64 {
	t.Helper()
	docs := make([]Document, len(texts))
	for i, text := range texts {
		docs[i] = Document{ID: string(rune('a' + i)), Text: text}
	}
	tokens := NormalizeDocuments(docs)
	vocab := BuildVocabulary(tokens)
	return CosineDistanceMatrix(VectorizeTFIDF(tokens, vocab))
}

func TestCosineDistanceMatrixProperties(t *testing.T) {
	dist := distMatrixFor(t, []string{
		"infusion pump occlusion alarm",
		"pump alarm sounded repeatedly",
		"lead fracture on explant",
		"12345", // normalizes to nothing
	})

	n := len(dist)
	require.Equal(t, 4, n)
	for i := 0; i < n; i++ {
		assert.Zero(t, dist[i][i], "diagonal must be zero")
		for j := 0; j < n; j++ {
			assert.Equal(t, dist[i][j], dist[j][i], "matrix must be exactly symmetric")
			assert.GreaterOrEqual(t, dist[i][j], 0.0)
			assert.LessOrEqual(t, dist[i][j], 1.0)
		}
	}
}

func TestCosineDistanceIdenticalDocuments(t *testing.T) {
	dist := distMatrixFor(t, []string{
		"device failure error",
		"device failure error",
		"battery swelling",
	})

	assert.InDelta(t, 0.0, dist[0][1], 1e-12)
	// No shared terms: orthogonal vectors sit at the maximal distance.
	assert.InDelta(t, 1.0, dist[0][2], 1e-12)
}

func TestCosineDistanceZeroNormPolicy(t *testing.T) {
	dist := distMatrixFor(t, []string{
		"pump alarm",
		"9876!!",
		"...",
	})

	// An empty-token document is maximally dissimilar from everything,
	// including another empty document, but its self-distance stays 0.
	assert.Equal(t, 1.0, dist[0][1])
	assert.Equal(t, 1.0, dist[1][2])
	assert.Zero(t, dist[1][1])
	assert.Zero(t, dist[2][2])
}
