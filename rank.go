package mdrcluster

import "sort"

// DefaultClusterLimit is the default number of top clusters kept in the
// final result set.
const DefaultClusterLimit = 8

// SelectTopClusters applies the top-K policy to DBSCAN labels: take the K+1
// largest groups by document count, noise included if it ranks that high,
// discard the noise group, and re-label the survivors with contiguous ranks
// 1..M ordered by descending size. Equal sizes break toward the group
// first encountered in corpus order; a group outside the cut is dropped
// entirely. Returns the label-to-rank mapping and the size per rank.
func SelectTopClusters(labels []int, k int) (map[int]int, []int) {
	sizes := make(map[int]int)
	firstSeen := make(map[int]int)
	for i, label := range labels {
		if _, ok := sizes[label]; !ok {
			firstSeen[label] = i
		}
		sizes[label]++
	}

	type group struct {
		label int
		size  int
		seen  int
	}
	groups := make([]group, 0, len(sizes))
	for label, size := range sizes {
		groups = append(groups, group{label: label, size: size, seen: firstSeen[label]})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].size != groups[j].size {
			return groups[i].size > groups[j].size
		}
		return groups[i].seen < groups[j].seen
	})

	if len(groups) > k+1 {
		groups = groups[:k+1]
	}

	ranks := make(map[int]int)
	var rankSizes []int
	for _, g := range groups {
		if g.label == 0 {
			continue
		}
		if len(rankSizes) == k {
			break
		}
		rankSizes = append(rankSizes, g.size)
		ranks[g.label] = len(rankSizes)
	}
	return ranks, rankSizes
}
