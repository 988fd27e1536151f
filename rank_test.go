package mdrcluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// labelSequence expands {label: count} pairs into a label slice, in the
// order the pairs are given.
func labelSequence(pairs ...[2]int) []int {
	var labels []int
	for _, p := range pairs {
		for i := 0; i < p[1]; i++ {
			labels = append(labels, p[0])
		}
	}
	return labels
}

func TestSelectTopClustersDiscardsNoise(t *testing.T) {
	// Noise is the largest group but never receives a rank.
	labels := labelSequence([2]int{0, 10}, [2]int{1, 5}, [2]int{2, 3})

	ranks, sizes := SelectTopClusters(labels, 8)

	assert.Equal(t, map[int]int{1: 1, 2: 2}, ranks)
	assert.Equal(t, []int{5, 3}, sizes)
}

func TestSelectTopClustersHonorsLimit(t *testing.T) {
	// Ten clusters of decreasing size, no noise; only the 3 largest survive.
	labels := labelSequence(
		[2]int{1, 12}, [2]int{2, 11}, [2]int{3, 10}, [2]int{4, 9}, [2]int{5, 8},
		[2]int{6, 7}, [2]int{7, 6}, [2]int{8, 5}, [2]int{9, 4}, [2]int{10, 3},
	)

	ranks, sizes := SelectTopClusters(labels, 3)

	require.Len(t, ranks, 3)
	assert.Equal(t, []int{12, 11, 10}, sizes)
	assert.Equal(t, 1, ranks[1])
	assert.Equal(t, 3, ranks[3])
	_, kept := ranks[4]
	assert.False(t, kept)
}

func TestSelectTopClustersSizesNonIncreasing(t *testing.T) {
	labels := labelSequence([2]int{1, 2}, [2]int{2, 7}, [2]int{0, 1}, [2]int{3, 4})

	ranks, sizes := SelectTopClusters(labels, 8)

	assert.Equal(t, []int{7, 4, 2}, sizes)
	for i := 1; i < len(sizes); i++ {
		assert.GreaterOrEqual(t, sizes[i-1], sizes[i])
	}
	assert.Equal(t, map[int]int{2: 1, 3: 2, 1: 3}, ranks)
}

func TestSelectTopClustersEqualSizeTieBreak(t *testing.T) {
	// Clusters 1 and 2 are both size 3; the first encountered wins rank 1.
	labels := labelSequence([2]int{1, 3}, [2]int{2, 3})

	ranks, _ := SelectTopClusters(labels, 8)

	assert.Equal(t, 1, ranks[1])
	assert.Equal(t, 2, ranks[2])
}

func TestSelectTopClustersNoiseInsideCutoff(t *testing.T) {
	// K=2: the three largest groups are noise(6), cluster 1(5), cluster
	// 2(4). Noise is discarded after the cut, so cluster 3 stays excluded
	// even though a slot opens up.
	labels := labelSequence([2]int{0, 6}, [2]int{1, 5}, [2]int{2, 4}, [2]int{3, 3})

	ranks, sizes := SelectTopClusters(labels, 2)

	assert.Equal(t, map[int]int{1: 1, 2: 2}, ranks)
	assert.Equal(t, []int{5, 4}, sizes)
	_, kept := ranks[3]
	assert.False(t, kept)
}

func TestSelectTopClustersEmpty(t *testing.T) {
	ranks, sizes := SelectTopClusters(nil, 8)
	assert.Empty(t, ranks)
	assert.Empty(t, sizes)

	// All-noise corpus yields no clusters.
	ranks, sizes = SelectTopClusters([]int{0, 0, 0}, 8)
	assert.Empty(t, ranks)
	assert.Empty(t, sizes)
}
