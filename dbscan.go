package mdrcluster

import "math"

// minPoints is the fixed DBSCAN density threshold: a document is a core
// point when its eps-neighborhood, counting the document itself, holds at
// least this many documents.
const minPoints = 3

// clusterEps derives the neighborhood radius from the corpus size. The
// radius tightens as the corpus grows, capped at 0.8 cosine distance.
// Only meaningful for n >= 2; ClusterDensity short-circuits below that.
func clusterEps(n int) float64 {
	return math.Min(2.5/math.Log(float64(n)), 0.8)
}

// ClusterDensity runs DBSCAN over the dissimilarity matrix and returns one
// label per document: 0 for noise, positive cluster ids contiguous from 1
// in discovery order. Documents are processed in corpus order, so the
// labeling is deterministic; a border point reachable from multiple
// clusters stays with whichever cluster reached it first.
func ClusterDensity(dist [][]float64, eps float64, minPts int) []int {
	n := len(dist)
	labels := make([]int, n)
	if n <= 1 {
		// eps is undefined for a corpus this small; a lone document can
		// never satisfy the density threshold, so everything is noise.
		return labels
	}

	const (
		unvisited = 0
		noise     = -1
	)

	state := make([]int, n)
	clusterID := 0

	for i := 0; i < n; i++ {
		if state[i] != unvisited {
			continue
		}

		neighbors := rangeQuery(dist, i, eps)
		if len(neighbors) < minPts {
			state[i] = noise
			continue
		}

		clusterID++
		state[i] = clusterID

		// Breadth-first absorption of every density-reachable point.
		seed := make([]int, 0, len(neighbors))
		for _, j := range neighbors {
			if j != i {
				seed = append(seed, j)
			}
		}
		for len(seed) > 0 {
			q := seed[0]
			seed = seed[1:]

			if state[q] == noise {
				// Border point: first cluster to reach it wins.
				state[q] = clusterID
			}
			if state[q] != unvisited {
				continue
			}
			state[q] = clusterID

			qNeighbors := rangeQuery(dist, q, eps)
			if len(qNeighbors) >= minPts {
				seed = append(seed, qNeighbors...)
			}
		}
	}

	for i, s := range state {
		if s == noise {
			labels[i] = 0
		} else {
			labels[i] = s
		}
	}
	return labels
}

// rangeQuery returns the indices within eps of document idx, in ascending
// order. The document itself is included (its self-distance is 0), which
// makes len(result) >= minPts exactly the core-point test.
func rangeQuery(dist [][]float64, idx int, eps float64) []int {
	var result []int
	for j, d := range dist[idx] {
		if d <= eps {
			result = append(result, j)
		}
	}
	return result
}
