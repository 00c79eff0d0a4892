package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	ipCount      = 40 // distinct client IPs
	uaCount      = 4  // distinct browsers -> ipCount*uaCount sessions
	articleCount = 16 // distinct article PIDs
	// Each (session, article) pair produces three clicks: the original, a
	// rapid duplicate one second later, and a deliberate revisit two minutes
	// later. The duplicate must be suppressed, the revisit must count.
	clicksPerPair = 3

	totalEntries = ipCount * uaCount * articleCount * clicksPerPair
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36 Edg/119.0.0.0",
}

// ### End - fixed configs

type accessRecord struct {
	IP           string  `json:"ip"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Timestamp    string  `json:"timestamp"`
	UserAgent    string  `json:"userAgent"`
	ActionTarget string  `json:"actionTarget"`
	Host         string  `json:"host"`
	Era          string  `json:"era"`
}

type batchToSend struct {
	batchIndex int
	jsonData   []byte
	isOriginal bool
}

type metricBucket struct {
	TotalItemRequests        int64 `json:"totalItemRequests"`
	UniqueItemRequests       int64 `json:"uniqueItemRequests"`
	TotalItemInvestigations  int64 `json:"totalItemInvestigations"`
	UniqueItemInvestigations int64 `json:"uniqueItemInvestigations"`
}

type metricRow struct {
	Date   string       `json:"date"`
	Bucket metricBucket `json:"bucket"`
}

type usageReport struct {
	Collection string      `json:"collection"`
	Day        string      `json:"day"`
	Metrics    []metricRow `json:"metrics"`
}

// main runs the e2e scenario: 001_counter_daily_report
//
// This scenario tests the end-to-end flow of access ingestion, hit
// classification, session double-click suppression and COUNTER daily report
// aggregation. It sends deterministic classic-era article accesses to the
// usage-counter API and then verifies the persisted daily usage report.
//
// What it tests:
//   - Access batch ingestion via POST /accesses endpoint
//   - Idempotency key handling for duplicate batch detection (409 Conflict)
//   - Classic-era URL classification into full-text article hits
//   - Double-click suppression: the 1-second duplicate click never counts,
//     the 2-minute revisit by the same session always does
//   - Per-batch unique counting: one unique per (session, article) pair
//   - Daily usage report creation and read-merge-write across many batches
//
// Expected results (collection scl, day 2025-12-28):
//   - 16 report rows, one per article
//   - Per row:  totalItemRequests=320  uniqueItemRequests=160
//     totalItemInvestigations=320  uniqueItemInvestigations=160
//   - Report totals: 5120 / 2560 / 5120 / 2560
//
// Run order:
//  1. Run this scenario once with only the seeding step (it seeds the
//     dictionary tables into the file storage directory before sending).
//  2. Start the server with file_storage.root_dir pointing at the same
//     directory.
//  3. The scenario sends all batches and polls the report file.
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080"    // Base URL of the usage-counter API server
	dateUTC := "2025-12-28"               // Date used for generating access timestamps (UTC)
	itemsPerBatch := 24                   // Access records per batch; must be a multiple of clicksPerPair so a session's click triple never splits across batches
	parallel := 2                         // Number of concurrent batch requests to send
	totalDuplicates := 100                // Duplicate batches resent with the same idempotency key
	collectionID := "scl"                 // Collection ID to use in requests
	fileStorageDir := ".tmp/file-storage" // File storage directory path relative to project root
	wantCleanFileStorage := true          // If true, clean up file storage directory before running scenario

	if itemsPerBatch%clicksPerPair != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: ITEMS_PER_BATCH (%d) must be divisible by CLICKS_PER_PAIR (%d)\n", itemsPerBatch, clicksPerPair)
		os.Exit(1)
	}
	if totalEntries%itemsPerBatch != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: TOTAL_ENTRIES (%d) must be divisible by ITEMS_PER_BATCH (%d)\n", totalEntries, itemsPerBatch)
		os.Exit(1)
	}

	batchCount := totalEntries / itemsPerBatch

	// Get project root directory by looking for go.mod file
	projectRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}
	for i := 0; i < 10; i++ {
		goModPath := filepath.Join(projectRoot, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			fmt.Fprintf(os.Stderr, "ERROR: Could not find go.mod file. Please run from project root\n")
			os.Exit(1)
		}
		projectRoot = parent
	}

	storagePath, err := filepath.Abs(filepath.Join(projectRoot, fileStorageDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to resolve file storage path: %v\n", err)
		os.Exit(1)
	}

	if wantCleanFileStorage {
		fmt.Printf("Cleaning file storage directory: %s\n", storagePath)
		if err := os.RemoveAll(storagePath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean file storage directory: %v\n", err)
		}
	}

	// Seed the dictionary tables the server loads at startup. The accesses
	// below embed everything in their PIDs, so empty tables are enough.
	if err := seedDictionaries(storagePath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to seed dictionaries: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded dictionary tables under %s\n", storagePath)
	fmt.Println()

	fmt.Println("Starting e2e scenario: 001_counter_daily_report")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("DATE_UTC: %s\n", dateUTC)
	fmt.Printf("ITEMS_PER_BATCH: %d\n", itemsPerBatch)
	fmt.Printf("BATCH_COUNT: %d\n", batchCount)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_DUPLICATES: %d\n", totalDuplicates)
	fmt.Printf("COLLECTION_ID: %s\n", collectionID)
	fmt.Printf("FILE_STORAGE_PATH: %s\n", storagePath)
	fmt.Printf("TOTAL_ENTRIES: %d\n", totalEntries)
	fmt.Println()

	// Generate all records
	fmt.Printf("Generating all %d records...\n", totalEntries)
	records := generateAllRecords(dateUTC)
	fmt.Printf("Generated %d records\n", len(records))
	fmt.Println()

	// Generate all batches (original + duplicates)
	batchesToSend := make([]batchToSend, 0, batchCount+totalDuplicates)
	for batchIndex := 1; batchIndex <= batchCount; batchIndex++ {
		start := (batchIndex - 1) * itemsPerBatch
		jsonData, err := json.Marshal(records[start : start+itemsPerBatch])
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to generate JSON for batch %d: %v\n", batchIndex, err)
			os.Exit(1)
		}
		batchesToSend = append(batchesToSend, batchToSend{
			batchIndex: batchIndex,
			jsonData:   jsonData,
			isOriginal: true,
		})
	}

	// Distribute duplicates round-robin across batches
	for i := 0; i < totalDuplicates; i++ {
		original := batchesToSend[i%batchCount]
		batchesToSend = append(batchesToSend, batchToSend{
			batchIndex: original.batchIndex,
			jsonData:   original.jsonData,
			isOriginal: false,
		})
	}

	fmt.Printf("Generated %d batches to send (%d original + %d duplicates)\n",
		len(batchesToSend), batchCount, len(batchesToSend)-batchCount)
	fmt.Println()

	// Worker pool for parallel batch sending
	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var sendErrors []error
	var acceptedRequest int64  // 202 status code
	var conflictedRequest int64 // 409 status code
	var invalidRequest int64   // 400 status code
	var internalRequest int64  // 500 status code

	for _, batch := range batchesToSend {
		wg.Add(1)
		workerChan <- struct{}{}

		go func(b batchToSend) {
			defer wg.Done()
			defer func() { <-workerChan }()

			statusCode, err := sendBatch(baseURL, collectionID, b)
			if err != nil {
				mu.Lock()
				sendErrors = append(sendErrors, fmt.Errorf("batch %d (original=%v): %w", b.batchIndex, b.isOriginal, err))
				mu.Unlock()
				fmt.Fprintf(os.Stderr, "ERROR: Batch %d failed: %v\n", b.batchIndex, err)
				return
			}

			switch statusCode {
			case http.StatusAccepted:
				atomic.AddInt64(&acceptedRequest, 1)
			case http.StatusConflict:
				atomic.AddInt64(&conflictedRequest, 1)
			case http.StatusBadRequest:
				atomic.AddInt64(&invalidRequest, 1)
			case http.StatusInternalServerError:
				atomic.AddInt64(&internalRequest, 1)
			}
		}(batch)
	}
	wg.Wait()

	fmt.Println()
	if len(sendErrors) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d batch sends failed\n", len(sendErrors))
		os.Exit(1)
	}

	fmt.Println("All batches completed")
	fmt.Println("=== Statistics ===")
	fmt.Printf("Accepted request: %d\n", atomic.LoadInt64(&acceptedRequest))
	fmt.Printf("Conflicted request: %d\n", atomic.LoadInt64(&conflictedRequest))
	fmt.Printf("Invalid request: %d\n", atomic.LoadInt64(&invalidRequest))
	fmt.Printf("Internal request: %d\n", atomic.LoadInt64(&internalRequest))
	fmt.Println()

	// The consumer drains the queue asynchronously; poll the report file
	// until the figures settle on the expected totals.
	reportPath := filepath.Join(storagePath, "usage-reports", collectionID, dateUTC+".json")
	if err := verifyReport(reportPath, dateUTC); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Report verification failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Scenario completed successfully")
}

func seedDictionaries(storagePath string) error {
	dir := filepath.Join(storagePath, "dictionaries")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tables := map[string]any{
		"pdfPaths":          map[string]any{},
		"acronyms":          map[string]any{},
		"languages":         map[string]any{},
		"dates":             map[string]any{},
		"secondaryAcronyms": map[string]any{},
		"domains":           map[string]any{"www.scielo.br": "scl"},
		"aliases":           map[string]any{},
	}
	raw, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "tables.json"), raw, 0o644)
}

// generateAllRecords lays out records triple by triple so a full
// (session, article) click triple always lands inside one batch.
func generateAllRecords(dateUTC string) []accessRecord {
	records := make([]accessRecord, 0, totalEntries)

	for ipIndex := 0; ipIndex < ipCount; ipIndex++ {
		for uaIndex := 0; uaIndex < uaCount; uaIndex++ {
			for articleIndex := 0; articleIndex < articleCount; articleIndex++ {
				records = append(records, generateTriple(dateUTC, ipIndex, uaIndex, articleIndex)...)
			}
		}
	}

	return records
}

func generateTriple(dateUTC string, ipIndex, uaIndex, articleIndex int) []accessRecord {
	ip := fmt.Sprintf("187.10.%d.%d", ipIndex/8, 10+ipIndex%8)
	pid := fmt.Sprintf("S0100-19651997000%05d", articleIndex+1)
	target := "/scielo.php?script=sci_arttext&pid=" + pid

	// All clicks stay inside hour 18 so each (ip, browser) pair is exactly
	// one session for the whole day.
	minute := 3 + articleIndex%4
	second := (ipIndex*7 + uaIndex*13) % 50

	base := accessRecord{
		IP:           ip,
		Latitude:     -23.55,
		Longitude:    -46.63,
		UserAgent:    userAgents[uaIndex],
		ActionTarget: target,
		Host:         "www.scielo.br",
		Era:          "classic",
	}

	stamp := func(minuteOffset, secondOffset int) string {
		totalSeconds := second + secondOffset
		return fmt.Sprintf("%sT18:%02d:%02d.000Z", dateUTC, minute+minuteOffset+totalSeconds/60, totalSeconds%60)
	}

	first := base
	first.Timestamp = stamp(0, 0)
	duplicate := base
	duplicate.Timestamp = stamp(0, 1) // suppressed: same target, 1s apart
	revisit := base
	revisit.Timestamp = stamp(2, 0) // counted: 2 minutes apart

	return []accessRecord{first, duplicate, revisit}
}

func sendBatch(baseURL, collectionID string, batch batchToSend) (int, error) {
	// Same key for all duplicates of this batch
	idempotencyKey := fmt.Sprintf("batch-%06d", batch.batchIndex)

	req, err := http.NewRequest("POST", baseURL+"/accesses", bytes.NewReader(batch.jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-collection-id", collectionID)
	req.Header.Set("idempotency-key", idempotencyKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	// 409 Conflict is expected for duplicates; other 4xx/5xx are failures.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
		return resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return resp.StatusCode, nil
}

func verifyReport(reportPath, dateUTC string) error {
	const (
		sessionCount = ipCount * uaCount
		wantRows     = articleCount
		// Two counted clicks per (session, article) pair, one unique.
		wantTotalPerRow  = int64(2 * sessionCount)
		wantUniquePerRow = int64(sessionCount)
	)

	deadline := time.Now().Add(60 * time.Second)
	var lastErr error

	for time.Now().Before(deadline) {
		lastErr = checkReport(reportPath, dateUTC, wantRows, wantTotalPerRow, wantUniquePerRow)
		if lastErr == nil {
			fmt.Printf("Report verified: %d rows, totals %d/%d per article\n", wantRows, wantTotalPerRow, wantUniquePerRow)
			return nil
		}
		time.Sleep(2 * time.Second)
	}

	return lastErr
}

func checkReport(reportPath, dateUTC string, wantRows int, wantTotal, wantUnique int64) error {
	raw, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("report not readable yet: %w", err)
	}

	var report usageReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return fmt.Errorf("failed to unmarshal report: %w", err)
	}

	if report.Day != dateUTC {
		return fmt.Errorf("unexpected report day: got %q, want %q", report.Day, dateUTC)
	}
	if len(report.Metrics) != wantRows {
		return fmt.Errorf("unexpected row count: got %d, want %d", len(report.Metrics), wantRows)
	}

	for i, row := range report.Metrics {
		if row.Date != dateUTC {
			return fmt.Errorf("row %d: unexpected date %q", i, row.Date)
		}
		b := row.Bucket
		if b.TotalItemRequests != wantTotal || b.TotalItemInvestigations != wantTotal {
			return fmt.Errorf("row %d: totals got %d/%d, want %d", i, b.TotalItemRequests, b.TotalItemInvestigations, wantTotal)
		}
		if b.UniqueItemRequests != wantUnique || b.UniqueItemInvestigations != wantUnique {
			return fmt.Errorf("row %d: uniques got %d/%d, want %d", i, b.UniqueItemRequests, b.UniqueItemInvestigations, wantUnique)
		}
	}

	return nil
}
