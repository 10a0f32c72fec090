package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReportEntry represents one mesh in the output report.
type ReportEntry struct {
	Name               string         `json:"name"`
	Success            bool           `json:"success"`
	Error              string         `json:"error,omitempty"`
	Strategy           string         `json:"strategy,omitempty"`
	Vertices           int            `json:"vertices"`
	Bones              int            `json:"bones"`
	HipThreshold       float64        `json:"hip_threshold,omitempty"`
	SmoothedPairs      int            `json:"smoothed_pairs"`
	NormalizedVertices int            `json:"normalized_vertices"`
	InvalidVertices    int            `json:"invalid_vertices"`
	Influences         map[string]int `json:"influences,omitempty"` // vertices per bone name
	Image              string         `json:"image,omitempty"`
	Millis             int64          `json:"millis"`
}

// Report is the JSON document written next to the skinned model.
type Report struct {
	Input          string        `json:"input"`
	Output         string        `json:"output"`
	Classification string        `json:"classification"`
	Meshes         []ReportEntry `json:"meshes"`
}

// NewReportEntry summarizes one result.
func NewReportEntry(r Result) ReportEntry {
	e := ReportEntry{
		Name:     r.Name,
		Success:  r.Success,
		Error:    r.Error,
		Vertices: r.Vertices,
		Image:    r.Image,
		Millis:   r.Elapsed.Milliseconds(),
	}
	if r.Stats != nil {
		e.Strategy = string(r.Stats.Strategy)
		e.Bones = r.Stats.BoneCount
		e.HipThreshold = r.Stats.Hip.Threshold
		e.SmoothedPairs = r.Stats.SmoothedPairs
		e.NormalizedVertices = r.Stats.NormalizedVertices
		e.InvalidVertices = r.Stats.InvalidVertices
	}
	if r.Binding != nil && r.Bones != nil {
		e.Influences = map[string]int{}
		for bone, n := range r.Binding.BonesUsed(r.Bones.Len()) {
			if n > 0 {
				e.Influences[r.Bones.Name(bone)] = n
			}
		}
	}
	return e
}

// WriteReport writes the report as indented JSON.
func WriteReport(path string, report Report, results []Result) error {
	report.Meshes = make([]ReportEntry, len(results))
	for i, r := range results {
		report.Meshes[i] = NewReportEntry(r)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("batch: write report %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}
