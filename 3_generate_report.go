package mdrcluster

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/report.html
var htmlTemplate string

//go:embed templates/styles.css
var cssStyles string

// clusterSection is one ranked cluster prepared for the report.
type clusterSection struct {
	Rank       int
	Size       int
	Theme      ClusterTheme
	TopTerms   []string
	Narratives []RankedDocument
}

// GenerateReportCmd: renders the clustering result as markdown and HTML
var GenerateReportCmd = &cobra.Command{
	Use:   "generate-report",
	Short: "Generate the cluster review report in markdown and HTML",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := loadClusterResult()
		if err != nil {
			log.Printf("Failed to load clusters: %v", err)
			return
		}

		report := formatClusterReport(result)
		if err := os.WriteFile("report.md", []byte(report), 0644); err != nil {
			log.Printf("Failed to write report file: %v", err)
			return
		}
		log.Println("Report generated: report.md")

		htmlContent := generateCompleteHTML(report, renderScatterSVG(result))
		if err := os.WriteFile("report.html", []byte(htmlContent), 0644); err != nil {
			log.Printf("Failed to write HTML file: %v", err)
			return
		}
		log.Println("HTML report generated: report.html")
	},
}

// formatClusterReport builds the markdown review report.
func formatClusterReport(result PipelineResult) string {
	var b strings.Builder
	b.WriteString("# MAUDE Complaint Clusters\n\n")
	fmt.Fprintf(&b, "%d reports analyzed, %d recurring complaint types found.\n\n",
		result.TotalDocuments, result.ClusterCount)

	if result.ClusterCount == 0 {
		b.WriteString("No dense complaint clusters were found in this result set.\n")
		return b.String()
	}

	for _, section := range buildClusterSections(result) {
		fmt.Fprintf(&b, "## %d. %s\n\n", section.Rank, section.Theme.Theme)
		if section.Theme.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", section.Theme.Description)
		}
		fmt.Fprintf(&b, "**Reports:** %d  \n", section.Size)
		fmt.Fprintf(&b, "**Key terms:** %s\n\n", strings.Join(section.TopTerms, ", "))

		for i, doc := range section.Narratives {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "> [%s] %s\n\n", doc.ID, truncateNarrative(doc.Text, 300))
		}
	}
	return b.String()
}

// buildClusterSections groups the ranked documents and labels each cluster,
// preferring the model's theme and falling back to top TF-IDF terms.
func buildClusterSections(result PipelineResult) []clusterSection {
	byRank := make(map[int][]RankedDocument)
	for _, doc := range result.Documents {
		byRank[doc.Cluster] = append(byRank[doc.Cluster], doc)
	}

	sections := make([]clusterSection, 0, result.ClusterCount)
	for rank := 1; rank <= result.ClusterCount; rank++ {
		docs := byRank[rank]
		section := clusterSection{
			Rank:       rank,
			Size:       len(docs),
			TopTerms:   topClusterTerms(docs, 6),
			Narratives: docs,
		}

		narratives := make([]string, len(docs))
		for i, doc := range docs {
			narratives[i] = doc.Text
		}
		theme, err := labelClusterWithAI(narratives)
		if err != nil {
			log.Printf("Falling back to term label for cluster %d: %v", rank, err)
			theme = ClusterTheme{Theme: strings.Join(section.TopTerms[:min(3, len(section.TopTerms))], " / ")}
		}
		section.Theme = theme
		sections = append(sections, section)
	}
	return sections
}

// topClusterTerms returns the most frequent normalized terms across a
// cluster's narratives. This is a report label aid, recomputed here from
// the raw text; the pipeline's own vectors are not persisted.
func topClusterTerms(docs []RankedDocument, limit int) []string {
	counts := make(map[string]int)
	for _, doc := range docs {
		for _, term := range normalizeText(doc.Text) {
			counts[term]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

func truncateNarrative(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

// generateCompleteHTML generates a complete HTML document with embedded CSS
// and the scatter plot of the projection.
func generateCompleteHTML(markdownContent, scatterSVG string) string {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdownContent), &buf); err != nil {
		log.Printf("Failed to convert markdown to HTML: %v", err)
		return ""
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		log.Printf("Failed to parse HTML template: %v", err)
		return ""
	}

	data := struct {
		Title string
		Date  string
		Plot  template.HTML
		Body  template.HTML
		CSS   template.CSS
	}{
		Title: "MAUDE Complaint Clusters",
		Date:  time.Now().Format("2 January 2006"),
		Plot:  template.HTML(scatterSVG),
		Body:  template.HTML(buf.String()),
		CSS:   template.CSS(cssStyles),
	}

	var result bytes.Buffer
	if err := tmpl.Execute(&result, data); err != nil {
		log.Printf("Failed to execute template: %v", err)
		return ""
	}
	return result.String()
}
