package main

import (
	"log"
	"os"

	mdrcluster "github.com/aboussina/NLP-Clustering-MDR-AEs"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; both API keys may come from the environment
	// directly, and neither is required for fetching or clustering.
	_ = godotenv.Load()

	mdrcluster.Config.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	mdrcluster.Config.OpenFDAAPIKey = os.Getenv("OPENFDA_API_KEY")

	rootCmd := &cobra.Command{
		Use:   "mdrcluster",
		Short: "MAUDE Adverse-Event Narrative Clustering CLI",
	}

	rootCmd.AddCommand(mdrcluster.FetchReportsCmd)
	rootCmd.AddCommand(mdrcluster.ClusterReportsCmd)
	rootCmd.AddCommand(mdrcluster.GenerateReportCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cleanCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var runCmd = &cobra.Command{
	Use:   "run <search-term>",
	Short: "Run the full pipeline: fetch-reports -> cluster-reports -> generate-report",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Running full pipeline...")
		mdrcluster.FetchReportsCmd.Run(cmd, args)
		mdrcluster.ClusterReportsCmd.Run(cmd, nil)
		mdrcluster.GenerateReportCmd.Run(cmd, nil)
		log.Println("Pipeline complete.")
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the report cache and generated artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		artifacts := []string{"reports.db", "clusters/clusters.json", "report.md", "report.html"}
		for _, path := range artifacts {
			if err := os.Remove(path); err != nil {
				if !os.IsNotExist(err) {
					log.Printf("Failed to remove %s: %v", path, err)
				}
			}
		}
		log.Println("Cleaned report cache and generated artifacts.")
	},
}
