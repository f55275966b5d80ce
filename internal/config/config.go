package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Built-in defaults for the three detection tunables and the redaction token.
// Every value can be overridden per-repo or globally via YAML.
const (
	DefaultMicroTextMaxPt = 4.0
	DefaultRedactionToken = "[REDACTED]"
)

// DefaultPhrases is the stock injection phrase list. Matching is
// case-insensitive substring.
func DefaultPhrases() []string {
	return []string{
		"ignore previous instructions",
		"ignore all previous instructions",
		"disregard previous instructions",
		"disregard all prior instructions",
		"you are now acting as",
		"your new role is",
		"pretend you are",
		"system prompt",
		"do not tell the user",
		"override your instructions",
	}
}

// DefaultHiddenColors lists the color encodings treated as background-matching:
// opaque white and the OOXML white theme placeholder.
func DefaultHiddenColors() []string {
	return []string{"FFFFFF", "background1"}
}

// FileConfig is the on-disk YAML configuration shape for Docsentry.
type FileConfig struct {
	Phrases        *[]string `yaml:"phrases"`
	ExtraPhrases   *[]string `yaml:"extra_phrases"`
	MicroTextMaxPt *float64  `yaml:"micro_text_max_pt"`
	HiddenColors   *[]string `yaml:"hidden_colors"`
	RedactionToken *string   `yaml:"redaction_token"`
	DedupePerRun   *bool     `yaml:"dedupe_per_run"`

	Include  *string `yaml:"include"`
	Exclude  *string `yaml:"exclude"`
	MaxBytes *int64  `yaml:"max_bytes"`
	NoColor  *bool   `yaml:"no_color"`
	NoCache  *bool   `yaml:"no_cache"`
	FailOn   *string `yaml:"fail_on"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .docsentry.yml/.yaml and docsentry.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".docsentry.yml", ".docsentry.yaml", "docsentry.yml", "docsentry.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "docsentry", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Settings is a fully resolved configuration with defaults applied.
type Settings struct {
	Phrases        []string
	MicroTextMaxPt float64
	HiddenColors   []string
	RedactionToken string
	DedupePerRun   bool
}

// Resolve merges a local and global FileConfig into concrete settings.
// Local wins over global; defaults fill anything left unset. extra_phrases
// append to the effective phrase list instead of replacing it.
func Resolve(local, global FileConfig) Settings {
	s := Settings{
		Phrases:        DefaultPhrases(),
		MicroTextMaxPt: DefaultMicroTextMaxPt,
		HiddenColors:   DefaultHiddenColors(),
		RedactionToken: DefaultRedactionToken,
	}
	pickStrings := func(local, global *[]string) *[]string {
		if local != nil {
			return local
		}
		return global
	}
	if p := pickStrings(local.Phrases, global.Phrases); p != nil {
		s.Phrases = append([]string(nil), (*p)...)
	}
	if p := pickStrings(local.ExtraPhrases, global.ExtraPhrases); p != nil {
		s.Phrases = append(s.Phrases, (*p)...)
	}
	if local.MicroTextMaxPt != nil {
		s.MicroTextMaxPt = *local.MicroTextMaxPt
	} else if global.MicroTextMaxPt != nil {
		s.MicroTextMaxPt = *global.MicroTextMaxPt
	}
	if c := pickStrings(local.HiddenColors, global.HiddenColors); c != nil {
		s.HiddenColors = append([]string(nil), (*c)...)
	}
	if local.RedactionToken != nil {
		s.RedactionToken = *local.RedactionToken
	} else if global.RedactionToken != nil {
		s.RedactionToken = *global.RedactionToken
	}
	if local.DedupePerRun != nil {
		s.DedupePerRun = *local.DedupePerRun
	} else if global.DedupePerRun != nil {
		s.DedupePerRun = *global.DedupePerRun
	}
	return s
}
