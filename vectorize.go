package mdrcluster

import (
	"math"
	"sort"
)

// Vocabulary assigns each distinct corpus term a stable column index.
// Terms are sorted lexicographically so vector columns are reproducible
// for identical input.
type Vocabulary struct {
	Terms []string
	Index map[string]int
}

// WeightedVector is a sparse TF-IDF vector keyed by vocabulary column.
// Absent columns are zero.
type WeightedVector map[int]float64

// BuildVocabulary collects the distinct tokens across the corpus.
func BuildVocabulary(tokens [][]string) Vocabulary {
	seen := make(map[string]bool)
	for _, doc := range tokens {
		for _, term := range doc {
			seen[term] = true
		}
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	return Vocabulary{Terms: terms, Index: index}
}

// VectorizeTFIDF weights every document against the vocabulary with
// tf(d,t) * ln(N/df(t)). Raw term counts are used for tf. idf is
// well-defined because every vocabulary term occurs in at least one
// document. A document with no tokens gets an empty vector.
func VectorizeTFIDF(tokens [][]string, vocab Vocabulary) []WeightedVector {
	n := len(tokens)

	// Document frequency per vocabulary column.
	df := make([]int, len(vocab.Terms))
	for _, doc := range tokens {
		inDoc := make(map[int]bool, len(doc))
		for _, term := range doc {
			inDoc[vocab.Index[term]] = true
		}
		for col := range inDoc {
			df[col]++
		}
	}

	idf := make([]float64, len(df))
	for col, count := range df {
		idf[col] = math.Log(float64(n) / float64(count))
	}

	vectors := make([]WeightedVector, n)
	for i, doc := range tokens {
		vec := make(WeightedVector, len(doc))
		for _, term := range doc {
			vec[vocab.Index[term]]++
		}
		for col, tf := range vec {
			vec[col] = tf * idf[col]
		}
		vectors[i] = vec
	}
	return vectors
}
