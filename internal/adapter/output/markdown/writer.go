// Package markdown renders situation analyses as Markdown, for terminal
// display and for saved report files.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/safewonder/safewonder/internal/domain"
)

type clock func() string

// Artifact bundles an analysis with the metadata needed to file it.
type Artifact struct {
	OutputDir string
	CountryID string
	Analysis  domain.SituationAnalysis
}

// Writer renders analyses into Markdown files.
type Writer struct {
	now clock
}

// NewWriter constructs a Markdown writer with a timestamp supplier.
func NewWriter(now clock) *Writer {
	return &Writer{now: now}
}

// Write persists a Markdown report to disk and returns its path.
func (w *Writer) Write(ctx context.Context, artifact Artifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("safety_%s_%s.md", sanitise(artifact.CountryID), w.now())
	path := filepath.Join(artifact.OutputDir, filename)

	if err := os.WriteFile(path, []byte(Render(artifact.Analysis)), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}

	return path, nil
}

// Render produces the Markdown document for one analysis.
func Render(analysis domain.SituationAnalysis) string {
	var builder strings.Builder
	caser := cases.Title(language.English)

	builder.WriteString("# Safety Analysis\n\n")
	builder.WriteString(fmt.Sprintf("- Risk Score: %d/100\n", analysis.RiskScore))
	builder.WriteString(fmt.Sprintf("- Risk Level: %s\n", caser.String(string(analysis.Tier))))
	builder.WriteString(fmt.Sprintf("- Pattern: %s\n\n", analysis.PatternMatched))

	builder.WriteString("## Assessment\n\n")
	builder.WriteString(analysis.RiskExplanation)
	builder.WriteString("\n\n")

	writeList(&builder, "## What To Do", analysis.WhatToDo)
	writeList(&builder, "## What Not To Do", analysis.WhatNotToDo)

	if len(analysis.EmergencyNumbers) > 0 {
		builder.WriteString("## Emergency Numbers\n\n")
		for _, service := range sortedKeys(analysis.EmergencyNumbers) {
			builder.WriteString(fmt.Sprintf("- %s: %s\n", caser.String(service), analysis.EmergencyNumbers[service]))
		}
		builder.WriteString("\n")
	}

	if len(analysis.LocalPhrases) > 0 {
		builder.WriteString("## Local Phrases\n\n")
		for _, phrase := range sortedKeys(analysis.LocalPhrases) {
			builder.WriteString(fmt.Sprintf("- %s: %s\n", caser.String(phrase), analysis.LocalPhrases[phrase]))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## Cultural Notes\n\n")
	builder.WriteString(analysis.CulturalNotes)
	builder.WriteString("\n")

	if analysis.Degraded {
		builder.WriteString("\n> Note: this result was assembled from an unstructured model response.\n")
	}

	return builder.String()
}

func writeList(builder *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	builder.WriteString(heading)
	builder.WriteString("\n\n")
	for _, item := range items {
		builder.WriteString(fmt.Sprintf("- %s\n", item))
	}
	builder.WriteString("\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sanitise(value string) string {
	if value == "" {
		return "unknown"
	}
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, string(filepath.Separator), "-")
	value = strings.ReplaceAll(value, " ", "-")
	return value
}
