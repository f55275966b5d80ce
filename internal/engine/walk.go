package engine

import (
	"io/fs"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/docsentry/docsentry/internal/extract"
)

// Walk traverses cfg.Root and returns the relative paths of eligible
// documents in walk order. Only files with a supported extension are
// collected; everything else is skipped silently during a directory scan.
func Walk(cfg Config) ([]string, error) {
	var targets []string
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if extract.DetectFormat(rel) == "" {
			return nil
		}
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if cfg.MaxBytes > 0 {
			if info, _ := d.Info(); info != nil && info.Size() > cfg.MaxBytes {
				return nil
			}
		}
		targets = append(targets, rel)
		return nil
	})
	return targets, err
}

// CountTargets returns how many documents a scan of cfg.Root would visit.
// Used by the CLI to size its progress display.
func CountTargets(cfg Config) (int, error) {
	targets, err := Walk(cfg)
	return len(targets), err
}

// allowedByGlobs returns true if the given path is allowed by the
// include/exclude glob configuration. Include globs are comma-separated and,
// if provided, act as a positive filter. Exclude globs are subtracted last.
// Matching uses forward-slash semantics.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
