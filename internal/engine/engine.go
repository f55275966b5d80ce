package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/docsentry/docsentry/internal/cache"
	"github.com/docsentry/docsentry/internal/extract"
	"github.com/docsentry/docsentry/internal/rules"
	"github.com/docsentry/docsentry/internal/sanitize"
	"github.com/docsentry/docsentry/internal/types"
)

// Config controls scanning behavior: detection tunables, scope filters, and
// cache/progress plumbing.
type Config struct {
	Root         string
	IncludeGlobs string
	ExcludeGlobs string
	MaxBytes     int64
	NoCache      bool

	Phrases        []string
	MicroTextMaxPt float64
	HiddenColors   []string
	RedactionToken string
	DedupePerRun   bool

	// Progress is called per page for paginated formats and at fixed
	// checkpoints for archive formats.
	Progress func(done, total int)
}

func (c Config) ruleConfig() rules.Config {
	return rules.Config{
		Phrases:        c.Phrases,
		MicroTextMaxPt: c.MicroTextMaxPt,
		DedupePerRun:   c.DedupePerRun,
	}
}

// Result contains per-document scan results and basic statistics.
type Result struct {
	Results      []types.ScanResult
	FilesScanned int
	CacheHits    int
	Duration     time.Duration
}

// ScanBytes scans one document held in memory. The declared format is
// checked before any adapter runs; bytes of an undeclared format are
// rejected with extract.ErrUnsupportedFormat. On adapter failure no
// ScanResult is produced.
func ScanBytes(fileName string, data []byte, format extract.Format, cfg Config) (types.ScanResult, error) {
	adapter, err := extract.ForFormat(format)
	if err != nil {
		return types.ScanResult{}, err
	}
	doc, err := adapter.Extract(data, extract.Options{
		HiddenColors: cfg.HiddenColors,
		Progress:     cfg.Progress,
	})
	if err != nil {
		return types.ScanResult{}, err
	}
	return aggregate(fileName, doc, cfg), nil
}

// aggregate folds per-run issues, in run-encounter order, into the single
// ScanResult that owns them.
func aggregate(fileName string, doc *extract.Document, cfg Config) types.ScanResult {
	rcfg := cfg.ruleConfig()
	issues := []types.Issue{}
	for _, run := range doc.Runs {
		issues = append(issues, rules.Evaluate(run, rcfg)...)
	}
	isEmpty := strings.TrimSpace(doc.RawText) == ""
	res := types.ScanResult{
		FileName:  fileName,
		Issues:    issues,
		PageCount: doc.PageCount,
		RawText:   doc.RawText,
		IsEmpty:   isEmpty,
		Safe:      len(issues) == 0 && !isEmpty,
	}
	if !isEmpty {
		res.SanitizedText = sanitize.Apply(doc.RawText, cfg.Phrases, cfg.RedactionToken)
	}
	return res
}

// ScanFile scans a single document on disk, deriving the format from the
// file extension.
func ScanFile(path string, cfg Config) (types.ScanResult, error) {
	format := extract.DetectFormat(path)
	if format == "" {
		return types.ScanResult{}, fmt.Errorf("%w: %s", extract.ErrUnsupportedFormat, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ScanResult{}, err
	}
	return ScanBytes(filepath.Base(path), data, format, cfg)
}

// ScanWithStats scans cfg.Root, which may name a document or a directory.
// Directory entries are processed strictly in walk order, one at a time, and
// unsupported files inside a directory are skipped rather than rejected. The
// per-file cache short-circuits documents whose bytes are unchanged.
func ScanWithStats(cfg Config) (Result, error) {
	var result Result
	started := time.Now()

	st, err := os.Stat(cfg.Root)
	if err != nil {
		return result, err
	}
	if !st.IsDir() {
		res, err := ScanFile(cfg.Root, cfg)
		if err != nil {
			return result, err
		}
		result.Results = append(result.Results, res)
		result.FilesScanned = 1
		result.Duration = time.Since(started)
		return result, nil
	}

	var db cache.DB
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root)
	} else {
		db.Entries = map[string]cache.Entry{}
	}
	updated := map[string]cache.Entry{}

	targets, err := Walk(cfg)
	if err != nil {
		return result, err
	}
	for _, rel := range targets {
		full := filepath.Join(cfg.Root, rel)
		data, err := os.ReadFile(full)
		if err != nil {
			return result, err
		}
		h := fastHash(data)
		if !cfg.NoCache {
			if prev, ok := db.Entries[rel]; ok && prev.Hash == h {
				res := prev.Result
				res.FileName = rel
				result.Results = append(result.Results, res)
				result.CacheHits++
				continue
			}
		}
		res, err := ScanBytes(rel, data, extract.DetectFormat(rel), cfg)
		if err != nil {
			return result, fmt.Errorf("%s: %w", rel, err)
		}
		result.Results = append(result.Results, res)
		result.FilesScanned++
		if !cfg.NoCache {
			updated[rel] = cache.Entry{Hash: h, Result: res}
		}
	}

	result.Duration = time.Since(started)
	if !cfg.NoCache && len(updated) > 0 {
		if db.Entries == nil {
			db.Entries = map[string]cache.Entry{}
		}
		for k, v := range updated {
			db.Entries[k] = v
		}
		_ = cache.Save(cfg.Root, db)
	}
	return result, nil
}

// Issues flattens a Result's per-document issues in document order.
func (r Result) Issues() []types.Issue {
	var out []types.Issue
	for _, res := range r.Results {
		out = append(out, res.Issues...)
	}
	return out
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
