package report

import (
	"encoding/json"
	"io"

	"github.com/docsentry/docsentry/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "error"
	default:
		return "warning"
	}
}

// WriteSARIF writes the scan results as SARIF 2.1.0. The page number maps to
// the region start line, the closest SARIF has to a page coordinate.
func WriteSARIF(w io.Writer, results []types.ScanResult, version string) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    "docsentry",
			Version: version,
			Rules: []sarifRule{
				{ID: string(types.KindInjectionKeyword), ShortDescription: sarifMessage{Text: "Injection phrase in document text"}},
				{ID: string(types.KindHiddenText), ShortDescription: sarifMessage{Text: "Text color matches page background"}},
				{ID: string(types.KindMicroText), ShortDescription: sarifMessage{Text: "Text below legibility threshold"}},
			},
		}},
		Results: []sarifResult{},
	}
	for _, res := range results {
		for _, is := range res.Issues {
			run.Results = append(run.Results, sarifResult{
				RuleID:  string(is.Kind),
				Level:   sevToLevel(is.Severity),
				Message: sarifMessage{Text: is.Detail},
				Locations: []sarifLoc{{
					PhysicalLocation: sarifPhys{
						ArtifactLocation: sarifArt{URI: res.FileName},
						Region:           sarifRegion{StartLine: is.Page},
					},
				}},
			})
		}
	}
	doc := sarif{Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
