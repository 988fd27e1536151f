package mdrcluster

import (
	"fmt"
	"sync"
)

// ProgressFunc observes pipeline stage transitions. The pipeline calls it
// between stages only; a nil func means no reporting. The core does no
// logging of its own.
type ProgressFunc func(stage, message string)

// RankedDocument is one narrative that survived cluster selection.
type RankedDocument struct {
	ID      string  `json:"report_id"`
	Text    string  `json:"narrative"`
	Cluster int     `json:"cluster"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// PipelineResult is the outcome of one clustering run.
type PipelineResult struct {
	TotalDocuments int              `json:"total_documents"`
	ClusterCount   int              `json:"cluster_count"`
	ClusterSizes   []int            `json:"cluster_sizes"`
	Documents      []RankedDocument `json:"documents"`
}

// RunPipeline clusters the corpus and returns the ranked result set. All
// degenerate corpora (empty, singleton, all-stopword) come back as ordinary
// results with zero clusters, never as errors. Every stage is deterministic
// for identically ordered input. The run owns all of its intermediate
// state; nothing is shared across concurrent invocations.
func RunPipeline(docs []Document, k int, progress ProgressFunc) PipelineResult {
	if k <= 0 {
		k = DefaultClusterLimit
	}

	n := len(docs)
	result := PipelineResult{TotalDocuments: n}
	if n == 0 {
		return result
	}

	report(progress, "normalize", fmt.Sprintf("normalizing %d narratives", n))
	tokens := NormalizeDocuments(docs)

	report(progress, "vectorize", "building TF-IDF vectors")
	vocab := BuildVocabulary(tokens)
	vectors := VectorizeTFIDF(tokens, vocab)

	report(progress, "distance", "computing pairwise cosine distances")
	dist := CosineDistanceMatrix(vectors)

	// The projection only needs the vectors, so it runs alongside
	// clustering; both read immutable inputs.
	var points []Point
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		points = ProjectPCA(vectors, len(vocab.Terms))
	}()

	report(progress, "cluster", fmt.Sprintf("running DBSCAN (minPts=%d)", minPoints))
	labels := ClusterDensity(dist, clusterEps(n), minPoints)
	wg.Wait()

	report(progress, "select", fmt.Sprintf("selecting top %d clusters", k))
	ranks, sizes := SelectTopClusters(labels, k)

	result.ClusterCount = len(sizes)
	result.ClusterSizes = sizes
	for i, doc := range docs {
		rank, ok := ranks[labels[i]]
		if !ok {
			continue
		}
		result.Documents = append(result.Documents, RankedDocument{
			ID:      doc.ID,
			Text:    doc.Text,
			Cluster: rank,
			X:       points[i].X,
			Y:       points[i].Y,
		})
	}
	return result
}

func report(progress ProgressFunc, stage, message string) {
	if progress != nil {
		progress(stage, message)
	}
}
