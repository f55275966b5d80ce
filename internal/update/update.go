// Package update implements the release check behind the CLI's startup
// notice. Results are cached on disk so the GitHub API is asked at most once
// per recheck interval, and the check is skipped entirely in CI or when the
// caller disables network access.
package update

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	releasesURL     = "https://api.github.com/repos/docsentry/docsentry/releases/latest"
	stateFileName   = "release-check.json"
	recheckInterval = 24 * time.Hour
	requestTimeout  = 2 * time.Second
)

// checkState is the persisted outcome of the last release lookup.
type checkState struct {
	LastChecked time.Time `json:"last_checked"`
	Latest      string    `json:"latest"`
}

func configDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "docsentry")
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "docsentry")
}

func loadState() (checkState, error) {
	var st checkState
	dir := configDir()
	if dir == "" {
		return st, errors.New("no config dir")
	}
	b, err := os.ReadFile(filepath.Join(dir, stateFileName))
	if err != nil {
		return st, err
	}
	_ = json.Unmarshal(b, &st)
	return st, nil
}

func saveState(st checkState) {
	dir := configDir()
	if dir == "" {
		return
	}
	_ = os.MkdirAll(dir, 0755)
	b, _ := json.MarshalIndent(st, "", "  ")
	_ = os.WriteFile(filepath.Join(dir, stateFileName), b, 0644)
}

func latestVersionOnline() (string, error) {
	client := &http.Client{Timeout: requestTimeout}
	req, _ := http.NewRequest("GET", releasesURL, nil)
	req.Header.Set("User-Agent", "docsentry-updater")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var obj struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return "", err
	}
	v := obj.TagName
	if v == "" {
		v = obj.Name
	}
	return v, nil
}

// Check returns (latest, isNewer, error). A cached lookup younger than the
// recheck interval is reused without touching the network; CI environments
// and noNetwork callers get a silent no-op.
func Check(current string, noNetwork bool) (string, bool, error) {
	if os.Getenv("CI") != "" || noNetwork {
		return "", false, nil
	}
	current = normalize(current)
	st, _ := loadState()
	latest := st.Latest
	if time.Since(st.LastChecked) > recheckInterval || latest == "" {
		if v, err := latestVersionOnline(); err == nil {
			latest = normalize(v)
			st.Latest = latest
			st.LastChecked = time.Now()
			saveState(st)
		}
	}
	if latest == "" || current == "" {
		return latest, false, nil
	}
	newer := compare(latest, current) > 0
	return latest, newer, nil
}

func normalize(v string) string {
	v = strings.TrimSpace(v)
	return strings.TrimPrefix(v, "v")
}

// compare returns 1 if a>b, -1 if a<b, 0 if equal, using dot-separated ints.
func compare(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		ai, bi := 0, 0
		if i < len(as) {
			ai = atoiSafe(as[i])
		}
		if i < len(bs) {
			bi = atoiSafe(bs[i])
		}
		if ai > bi {
			return 1
		}
		if ai < bi {
			return -1
		}
	}
	return 0
}

func atoiSafe(s string) int {
	v := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			v = v*10 + int(s[i]-'0')
		} else {
			break
		}
	}
	return v
}
