package mdrcluster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVocabularySortedAndDeduplicated(t *testing.T) {
	tokens := [][]string{
		{"pump", "alarm", "pump"},
		{"batteri", "alarm"},
		nil,
	}

	vocab := BuildVocabulary(tokens)

	assert.Equal(t, []string{"alarm", "batteri", "pump"}, vocab.Terms)
	assert.Equal(t, 0, vocab.Index["alarm"])
	assert.Equal(t, 1, vocab.Index["batteri"])
	assert.Equal(t, 2, vocab.Index["pump"])
}

func TestVectorizeTFIDFWeights(t *testing.T) {
	// Three documents: "pump" in 2 of 3, "alarm" in all 3, "leak" in 1.
	tokens := [][]string{
		{"pump", "pump", "alarm"},
		{"pump", "alarm"},
		{"leak", "alarm"},
	}
	vocab := BuildVocabulary(tokens)
	vectors := VectorizeTFIDF(tokens, vocab)

	require.Len(t, vectors, 3)

	idfPump := math.Log(3.0 / 2.0)
	idfAlarm := math.Log(3.0 / 3.0) // zero: term occurs everywhere
	idfLeak := math.Log(3.0 / 1.0)

	assert.InDelta(t, 2*idfPump, vectors[0][vocab.Index["pump"]], 1e-12)
	assert.InDelta(t, 1*idfAlarm, vectors[0][vocab.Index["alarm"]], 1e-12)
	assert.InDelta(t, 1*idfPump, vectors[1][vocab.Index["pump"]], 1e-12)
	assert.InDelta(t, 1*idfLeak, vectors[2][vocab.Index["leak"]], 1e-12)

	// Terms absent from a document are zero (not stored).
	_, hasLeak := vectors[0][vocab.Index["leak"]]
	assert.False(t, hasLeak)
}

func TestVectorizeTFIDFEmptyDocument(t *testing.T) {
	tokens := [][]string{
		{"pump", "alarm"},
		nil,
	}
	vocab := BuildVocabulary(tokens)
	vectors := VectorizeTFIDF(tokens, vocab)

	require.Len(t, vectors, 2)
	assert.Empty(t, vectors[1])
}

func TestVectorizeTFIDFIdenticalTokenMultisets(t *testing.T) {
	tokens := [][]string{
		{"devic", "failur", "error"},
		{"error", "devic", "failur"},
		{"batteri", "swell"},
	}
	vocab := BuildVocabulary(tokens)
	vectors := VectorizeTFIDF(tokens, vocab)

	// Same multiset in different order yields the same weighted vector.
	assert.Equal(t, vectors[0], vectors[1])
}

func TestVectorizeTFIDFDeterministic(t *testing.T) {
	tokens := [][]string{
		{"pump", "occlus", "alarm"},
		{"lead", "fractur"},
		{"pump", "alarm", "alarm"},
	}

	vocabA := BuildVocabulary(tokens)
	vocabB := BuildVocabulary(tokens)
	assert.Equal(t, vocabA.Terms, vocabB.Terms)
	assert.Equal(t, VectorizeTFIDF(tokens, vocabA), VectorizeTFIDF(tokens, vocabB))
}
