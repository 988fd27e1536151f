package mdrcluster

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	openFDAEndpoint = "https://api.fda.gov/device/event.json"
	openFDAPageSize = 100

	// MaxReports bounds the result set one run can retrieve; the pipeline's
	// O(N^2) distance matrix is sized for corpora up to this limit.
	MaxReports = 1000

	// narrativeTextType is the mdr_text category carrying the event
	// narrative; the other categories (manufacturer evaluation codes,
	// additional correspondence) are excluded at retrieval.
	narrativeTextType = "Description of Event or Problem"
)

// ReportQuery describes one MAUDE search.
type ReportQuery struct {
	Search       string    // free-text term matched against the narrative
	Manufacturer string    // optional device.manufacturer_d_name filter
	Brand        string    // optional device.brand_name filter
	Since        time.Time // optional date_received lower bound
	Limit        int       // capped at MaxReports
}

// AdverseEventReport is one MAUDE report with its event narrative.
type AdverseEventReport struct {
	ReportKey string `json:"mdr_report_key"`
	Received  string `json:"date_received"`
	Product   string `json:"product"`
	Company   string `json:"company"`
	Narrative string `json:"narrative"`
}

// fetchAdverseEvents pages through the openFDA device-event API and returns
// the matching reports that carry an event narrative. Reports without a
// narrative text entry are skipped: the pipeline clusters free text, and
// those reports have none.
func fetchAdverseEvents(q ReportQuery) ([]AdverseEventReport, error) {
	limit := q.Limit
	if limit <= 0 || limit > MaxReports {
		limit = MaxReports
	}

	expr := buildSearchExpression(q)
	log.Printf("openFDA search: %s (limit %d)", expr, limit)

	var reports []AdverseEventReport
	for skip := 0; len(reports) < limit; skip += openFDAPageSize {
		results, total, err := fetchPage(expr, openFDAPageSize, skip)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			break
		}

		for _, r := range results {
			if r.Narrative == "" {
				continue
			}
			reports = append(reports, r)
			if len(reports) == limit {
				break
			}
		}

		if skip+openFDAPageSize >= total {
			break
		}
	}

	log.Printf("Fetched %d reports with narratives", len(reports))
	return reports, nil
}

// buildSearchExpression assembles the openFDA search parameter from the
// query fields.
func buildSearchExpression(q ReportQuery) string {
	parts := []string{fmt.Sprintf("mdr_text.text:%q", q.Search)}
	if q.Manufacturer != "" {
		parts = append(parts, fmt.Sprintf("device.manufacturer_d_name:%q", q.Manufacturer))
	}
	if q.Brand != "" {
		parts = append(parts, fmt.Sprintf("device.brand_name:%q", q.Brand))
	}
	if !q.Since.IsZero() {
		parts = append(parts, fmt.Sprintf("date_received:[%s TO %s]",
			q.Since.Format("20060102"), time.Now().Format("20060102")))
	}
	return strings.Join(parts, " AND ")
}

// fetchPage retrieves one page of results and the total match count.
func fetchPage(expr string, limit, skip int) ([]AdverseEventReport, int, error) {
	params := url.Values{}
	params.Set("search", expr)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(skip))
	if Config.OpenFDAAPIKey != "" {
		params.Set("api_key", Config.OpenFDAAPIKey)
	}

	resp, err := http.Get(openFDAEndpoint + "?" + params.Encode())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query openFDA: %w", err)
	}
	defer resp.Body.Close()

	// openFDA answers an empty result set with 404.
	if resp.StatusCode == http.StatusNotFound {
		return nil, 0, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, 0, fmt.Errorf("openFDA error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Meta struct {
			Results struct {
				Total int `json:"total"`
			} `json:"results"`
		} `json:"meta"`
		Results []struct {
			MDRReportKey string `json:"mdr_report_key"`
			DateReceived string `json:"date_received"`
			Device       []struct {
				BrandName         string `json:"brand_name"`
				GenericName       string `json:"generic_name"`
				ManufacturerDName string `json:"manufacturer_d_name"`
			} `json:"device"`
			MDRText []struct {
				Text         string `json:"text"`
				TextTypeCode string `json:"text_type_code"`
			} `json:"mdr_text"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, 0, fmt.Errorf("failed to decode openFDA response: %w", err)
	}

	reports := make([]AdverseEventReport, 0, len(payload.Results))
	for _, item := range payload.Results {
		report := AdverseEventReport{
			ReportKey: item.MDRReportKey,
			Received:  item.DateReceived,
		}
		if len(item.Device) > 0 {
			report.Product = item.Device[0].BrandName
			if report.Product == "" {
				report.Product = item.Device[0].GenericName
			}
			report.Company = item.Device[0].ManufacturerDName
		}

		// Multiple narrative entries for the same report (supplemental
		// filings) are joined into one text.
		var texts []string
		for _, t := range item.MDRText {
			if t.TextTypeCode == narrativeTextType && t.Text != "" {
				texts = append(texts, t.Text)
			}
		}
		report.Narrative = strings.Join(texts, " ")

		reports = append(reports, report)
	}
	return reports, payload.Meta.Results.Total, nil
}
