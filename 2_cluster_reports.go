package mdrcluster

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

const clustersFile = "clusters/clusters.json"

var clusterLimit int

// ClusterReportsCmd: runs the clustering pipeline over the cached narratives
var ClusterReportsCmd = &cobra.Command{
	Use:   "cluster-reports",
	Short: "Cluster cached narratives into recurring complaint types",
	Run: func(cmd *cobra.Command, args []string) {
		if err := clusterCachedReports(clusterLimit); err != nil {
			log.Printf("Failed to cluster reports: %v", err)
			return
		}
		log.Println("Report clustering complete.")
	},
}

func init() {
	ClusterReportsCmd.Flags().IntVar(&clusterLimit, "clusters", DefaultClusterLimit, "maximum clusters to keep in the result")
}

// clusterCachedReports loads the cache, runs the pipeline, and saves the
// ranked result.
func clusterCachedReports(k int) error {
	reports, err := loadCachedReports()
	if err != nil {
		return fmt.Errorf("failed to load cached reports: %w", err)
	}
	log.Printf("Loaded %d narratives for clustering", len(reports))

	docs := make([]Document, len(reports))
	for i, r := range reports {
		docs[i] = Document{ID: r.ReportKey, Text: r.Narrative}
	}

	result := RunPipeline(docs, k, func(stage, message string) {
		log.Printf("[%s] %s", stage, message)
	})

	log.Printf("Found %d clusters covering %d of %d reports",
		result.ClusterCount, len(result.Documents), result.TotalDocuments)

	if err := os.MkdirAll("clusters", 0755); err != nil {
		return fmt.Errorf("failed to create clusters directory: %w", err)
	}
	if err := saveClusterResult(result); err != nil {
		return fmt.Errorf("failed to save clusters: %w", err)
	}
	return nil
}

// saveClusterResult saves the pipeline result to JSON file
func saveClusterResult(result PipelineResult) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal clusters: %w", err)
	}
	if err := os.WriteFile(clustersFile, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write clusters file: %w", err)
	}
	return nil
}

// loadClusterResult loads a previously saved pipeline result
func loadClusterResult() (PipelineResult, error) {
	data, err := os.ReadFile(clustersFile)
	if err != nil {
		return PipelineResult{}, fmt.Errorf("failed to read clusters file: %w", err)
	}

	var result PipelineResult
	if err := json.Unmarshal(data, &result); err != nil {
		return PipelineResult{}, fmt.Errorf("failed to parse clusters: %w", err)
	}
	return result, nil
}
