package mdrcluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClusterReportEmptyResult(t *testing.T) {
	report := formatClusterReport(PipelineResult{TotalDocuments: 7})

	assert.Contains(t, report, "7 reports analyzed, 0 recurring complaint types found.")
	assert.Contains(t, report, "No dense complaint clusters were found")
}

func TestFormatClusterReportSections(t *testing.T) {
	result := PipelineResult{
		TotalDocuments: 5,
		ClusterCount:   1,
		ClusterSizes:   []int{3},
		Documents: []RankedDocument{
			{ID: "r1", Text: "pump occlusion alarm sounded", Cluster: 1},
			{ID: "r2", Text: "pump occlusion alarm triggered", Cluster: 1},
			{ID: "r3", Text: "pump occlusion alarm went off", Cluster: 1},
		},
	}

	// No API key configured, so the section label comes from top terms.
	report := formatClusterReport(result)

	assert.Contains(t, report, "5 reports analyzed, 1 recurring complaint types found.")
	assert.Contains(t, report, "**Reports:** 3")
	assert.Contains(t, report, "alarm")
	assert.Contains(t, report, "> [r1] pump occlusion alarm sounded")
}

func TestTopClusterTerms(t *testing.T) {
	docs := []RankedDocument{
		{Text: "battery swelling observed near battery compartment"},
		{Text: "battery swelling reported again"},
		{Text: "the battery was replaced"},
	}

	terms := topClusterTerms(docs, 3)
	require.NotEmpty(t, terms)
	assert.Equal(t, "batteri", terms[0])
	assert.Contains(t, terms, "swell")
	assert.Len(t, terms, 3)
}

func TestTopClusterTermsTieBreakAlphabetical(t *testing.T) {
	docs := []RankedDocument{{Text: "cracked housing"}}

	// Both terms occur once, so order falls back to the term itself.
	assert.Equal(t, []string{"crack", "hous"}, topClusterTerms(docs, 5))
}

func TestTruncateNarrative(t *testing.T) {
	assert.Equal(t, "short", truncateNarrative("short", 10))
	assert.Equal(t, "abcde...", truncateNarrative("abcdefgh", 5))
}

func TestGenerateCompleteHTML(t *testing.T) {
	page := generateCompleteHTML("# MAUDE Complaint Clusters\n\nSome **body** text.\n", "<svg></svg>")

	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<strong>body</strong>")
	assert.Contains(t, page, "<svg></svg>")
	assert.Contains(t, page, "MAUDE Complaint Clusters")
}
