package mdrcluster

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sosodev/duration"
	"github.com/spf13/cobra"
)

const reportsDB = "reports.db"

var (
	fetchManufacturer string
	fetchBrand        string
	fetchLimit        int
	fetchWindow       string
)

// FetchReportsCmd: queries openFDA MAUDE and caches narratives in reports.db
var FetchReportsCmd = &cobra.Command{
	Use:   "fetch-reports <search-term>",
	Short: "Fetch adverse-event narratives from openFDA MAUDE",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := ReportQuery{
			Search:       args[0],
			Manufacturer: fetchManufacturer,
			Brand:        fetchBrand,
			Limit:        fetchLimit,
		}

		if fetchWindow != "" {
			d, err := duration.Parse(fetchWindow)
			if err != nil {
				log.Fatalf("Invalid --received-within duration %q: %v", fetchWindow, err)
			}
			query.Since = time.Now().Add(-d.ToTimeDuration())
		}

		if err := fetchAndCacheReports(query); err != nil {
			log.Printf("Failed to fetch reports: %v", err)
			return
		}
		log.Println("Report fetch complete.")
	},
}

func init() {
	FetchReportsCmd.Flags().StringVar(&fetchManufacturer, "manufacturer", "", "filter by device manufacturer name")
	FetchReportsCmd.Flags().StringVar(&fetchBrand, "brand", "", "filter by device brand name")
	FetchReportsCmd.Flags().IntVar(&fetchLimit, "limit", 500, fmt.Sprintf("maximum reports to fetch (capped at %d)", MaxReports))
	FetchReportsCmd.Flags().StringVar(&fetchWindow, "received-within", "", "ISO 8601 lookback window for date_received, e.g. P1Y or P6M")
}

// fetchAndCacheReports retrieves matching reports and replaces the local
// cache with them. The cache only holds raw retrieved narratives; nothing
// derived by the pipeline is persisted.
func fetchAndCacheReports(query ReportQuery) error {
	reports, err := fetchAdverseEvents(query)
	if err != nil {
		return fmt.Errorf("failed to fetch adverse events: %w", err)
	}

	db, err := initReportDB()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if _, err := db.Exec("DELETE FROM reports"); err != nil {
		return fmt.Errorf("failed to clear report cache: %w", err)
	}

	for _, report := range reports {
		if err := saveReport(db, report); err != nil {
			return fmt.Errorf("failed to save report %s: %w", report.ReportKey, err)
		}
	}

	log.Printf("Cached %d reports in %s", len(reports), reportsDB)
	return nil
}

// initReportDB initializes the SQLite cache for fetched narratives
func initReportDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", reportsDB)
	if err != nil {
		return nil, err
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS reports (
		report_id TEXT PRIMARY KEY,
		received TEXT NOT NULL,
		product TEXT NOT NULL,
		company TEXT NOT NULL,
		narrative TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_reports_received ON reports(received);
	`

	if _, err := db.Exec(createTableSQL); err != nil {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
		return nil, err
	}

	return db, nil
}

// saveReport inserts one report into the cache
func saveReport(db *sql.DB, report AdverseEventReport) error {
	insertSQL := `
	INSERT OR REPLACE INTO reports (report_id, received, product, company, narrative)
	VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.Exec(insertSQL, report.ReportKey, report.Received, report.Product, report.Company, report.Narrative)
	return err
}

// loadCachedReports reads the cache back in fetch order.
func loadCachedReports() ([]AdverseEventReport, error) {
	db, err := sql.Open("sqlite3", reportsDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	rows, err := db.Query(`
	SELECT report_id, received, product, company, narrative
	FROM reports
	ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Failed to close rows: %v", err)
		}
	}()

	var reports []AdverseEventReport
	for rows.Next() {
		var r AdverseEventReport
		if err := rows.Scan(&r.ReportKey, &r.Received, &r.Product, &r.Company, &r.Narrative); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
