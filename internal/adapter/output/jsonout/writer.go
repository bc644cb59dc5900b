// Package jsonout persists situation analyses as indented JSON files.
package jsonout

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/safewonder/safewonder/internal/domain"
)

// Artifact bundles an analysis with the metadata needed to file it.
type Artifact struct {
	OutputDir string
	CountryID string
	Analysis  domain.SituationAnalysis
}

// Writer persists analyses to disk as JSON files.
type Writer struct {
	now func() string
}

// NewWriter creates a JSON writer with a timestamp supplier.
func NewWriter(now func() string) *Writer {
	return &Writer{now: now}
}

// Write persists an analysis to disk and returns the file path.
func (w *Writer) Write(ctx context.Context, artifact Artifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(artifact.OutputDir, fmt.Sprintf("safety_%s_%s.json", artifact.CountryID, w.now()))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create json file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(artifact.Analysis); err != nil {
		return "", fmt.Errorf("encode analysis: %w", err)
	}

	return path, nil
}

// Render returns the indented JSON for one analysis, for stdout use.
func Render(analysis domain.SituationAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode analysis: %w", err)
	}
	return string(data), nil
}
