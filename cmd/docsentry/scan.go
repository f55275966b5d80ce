package docsentry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/audit"
	"github.com/docsentry/docsentry/internal/config"
	"github.com/docsentry/docsentry/internal/engine"
	"github.com/docsentry/docsentry/internal/extract"
	"github.com/docsentry/docsentry/internal/highlight"
	"github.com/docsentry/docsentry/internal/report"
	"github.com/docsentry/docsentry/internal/tui"
	"github.com/docsentry/docsentry/internal/types"
	"github.com/docsentry/docsentry/internal/update"
)

var (
	flagInclude      string
	flagExclude      string
	flagMaxBytes     int64
	flagFormat       string
	flagDedupe       bool
	flagSanitizedOut string
	flagProofOut     string
	flagTUI          bool
	flagNoAudit      bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan PATH",
		Short: "Scan a document or a directory of documents",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs (directory scans)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs (directory scans)")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 64<<20, "skip documents larger than this (directory scans)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "declared format: pdf|docx (default: by extension)")
	cmd.Flags().BoolVar(&flagDedupe, "dedupe-per-run", false, "collapse multiple issues of one kind on a single run")
	cmd.Flags().StringVar(&flagSanitizedOut, "sanitized-out", "", "write the sanitized text artifact to this file")
	cmd.Flags().StringVar(&flagProofOut, "proof-out", "", "write the marker-annotated proof text to this file")
	cmd.Flags().BoolVar(&flagTUI, "tui", false, "open the interactive review UI")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "do not append this scan to the audit log")
}

func runScan(cmd *cobra.Command, args []string) error {
	abs, _ := filepath.Abs(args[0])

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	root := abs
	if st, err := os.Stat(abs); err == nil && !st.IsDir() {
		root = filepath.Dir(abs)
	}
	if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	}
	settings := config.Resolve(lcfg, gcfg)
	if flagDedupe {
		settings.DedupePerRun = true
	}

	cfg := engine.Config{
		Root:           abs,
		IncludeGlobs:   pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:   pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:       pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		NoCache:        pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		Phrases:        settings.Phrases,
		MicroTextMaxPt: settings.MicroTextMaxPt,
		HiddenColors:   settings.HiddenColors,
		RedactionToken: settings.RedactionToken,
		DedupePerRun:   settings.DedupePerRun,
	}
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	failOn := pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn)

	quiet := flagJSON || flagSARIF
	if !quiet {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'docsentry --self-update' to upgrade\n", latest)
			}
		}
		if flagSelfUpdate {
			if err := selfUpdate(); err == nil {
				_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
	}

	// Per-document progress: pages for PDF, fixed checkpoints for DOCX.
	if !quiet && !flagTUI {
		cfg.Progress = func(done, total int) {
			if total > 0 {
				_, _ = fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", done, total, float64(done)/float64(total)*100)
				if done == total {
					_, _ = fmt.Fprint(os.Stderr, "\r\x1b[K")
				}
			}
		}
	}

	res, err := scanTarget(abs, cfg)
	if err != nil {
		var perr *extract.ParseError
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat):
			return fmt.Errorf("unsupported format: %w", err)
		case errors.As(err, &perr):
			// An extraction failure must surface explicitly; there is no
			// partial result to fall back on.
			return fmt.Errorf("scan aborted: %w", err)
		default:
			return fmt.Errorf("scan error: %w", err)
		}
	}

	if !flagNoAudit {
		log := audit.NewAuditLog(root)
		_ = log.LogScan(audit.CreateScanRecord(abs, res.Results, res.Duration))
	}

	if flagSanitizedOut != "" || flagProofOut != "" {
		if err := writeArtifacts(res, settings.Phrases); err != nil {
			return err
		}
	}

	if flagTUI {
		if len(res.Results) != 1 {
			return fmt.Errorf("--tui reviews a single document; %d were scanned", len(res.Results))
		}
		return tui.Run(res.Results[0], settings.Phrases, func() (types.ScanResult, error) {
			return scanOne(abs, cfg)
		})
	}

	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, res.Results, version); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Results); err != nil {
			return err
		}
	default:
		report.PrintResults(os.Stdout, res.Results, report.PrintOptions{
			NoColor:      noColor,
			Duration:     res.Duration,
			FilesScanned: res.FilesScanned,
			CacheHits:    res.CacheHits,
		})
	}

	if report.ShouldFail(res.Issues(), failOn) {
		os.Exit(1)
	}
	return nil
}

// scanOne scans a single document file, honoring the --format override.
func scanOne(path string, cfg engine.Config) (types.ScanResult, error) {
	format := extract.Format(flagFormat)
	if format == "" {
		format = extract.DetectFormat(path)
	}
	if format == "" {
		return types.ScanResult{}, fmt.Errorf("%w: %s", extract.ErrUnsupportedFormat, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ScanResult{}, err
	}
	return engine.ScanBytes(filepath.Base(path), data, format, cfg)
}

// scanTarget scans a file or directory. Explicitly named files go through
// scanOne so the declared-format check happens before any adapter runs; in
// a directory walk, unsupported files are simply skipped.
func scanTarget(abs string, cfg engine.Config) (engine.Result, error) {
	st, err := os.Stat(abs)
	if err != nil {
		return engine.Result{}, err
	}
	if st.IsDir() {
		return engine.ScanWithStats(cfg)
	}
	res, err := scanOne(abs, cfg)
	if err != nil {
		return engine.Result{}, err
	}
	return engine.Result{Results: []types.ScanResult{res}, FilesScanned: 1}, nil
}

func writeArtifacts(res engine.Result, phrases []string) error {
	if len(res.Results) != 1 {
		return fmt.Errorf("artifact output expects a single document; %d were scanned", len(res.Results))
	}
	doc := res.Results[0]
	if doc.IsEmpty {
		return errors.New("document has no extractable text; nothing to write")
	}
	if flagSanitizedOut != "" {
		if err := os.WriteFile(flagSanitizedOut, []byte(doc.SanitizedText), 0600); err != nil {
			return err
		}
	}
	if flagProofOut != "" {
		segs := highlight.Build(doc.RawText, doc.Issues, phrases)
		if err := os.WriteFile(flagProofOut, []byte(highlight.Marker(segs)), 0600); err != nil {
			return err
		}
	}
	return nil
}
