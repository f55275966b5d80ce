package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/docsentry/docsentry/internal/types"
)

// ScanRecord is one line of the scan history log. Raw document text is never
// stored, only finding metadata.
type ScanRecord struct {
	Timestamp      time.Time      `json:"timestamp"`
	ScanID         string         `json:"scan_id"`
	Root           string         `json:"root"`
	Documents      int            `json:"documents"`
	TotalIssues    int            `json:"total_issues"`
	SeverityCounts map[string]int `json:"severity_counts"`
	KindCounts     map[string]int `json:"kind_counts"`
	UnsafeFiles    []string       `json:"unsafe_files,omitempty"`
	Duration       string         `json:"duration"`
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(root string) *AuditLog {
	return &AuditLog{logPath: filepath.Join(root, ".docsentry_audit.jsonl")}
}

func (a *AuditLog) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record ScanRecord
		if err := decoder.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}

	// newest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) LogScan(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = fmt.Sprintf("scan_%d", time.Now().Unix())
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// CreateScanRecord summarizes one engine result set for the history log.
func CreateScanRecord(root string, results []types.ScanResult, duration time.Duration) ScanRecord {
	severityCounts := make(map[string]int)
	kindCounts := make(map[string]int)
	total := 0
	var unsafe []string
	for _, res := range results {
		if !res.Safe && !res.IsEmpty {
			unsafe = append(unsafe, res.FileName)
		}
		for _, is := range res.Issues {
			total++
			severityCounts[string(is.Severity)]++
			kindCounts[string(is.Kind)]++
		}
	}
	return ScanRecord{
		Timestamp:      time.Now(),
		Root:           root,
		Documents:      len(results),
		TotalIssues:    total,
		SeverityCounts: severityCounts,
		KindCounts:     kindCounts,
		UnsafeFiles:    unsafe,
		Duration:       duration.String(),
	}
}
