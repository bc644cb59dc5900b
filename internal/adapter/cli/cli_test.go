package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safewonder/safewonder/internal/adapter/cli"
	"github.com/safewonder/safewonder/internal/adapter/output/jsonout"
	"github.com/safewonder/safewonder/internal/adapter/output/markdown"
	"github.com/safewonder/safewonder/internal/domain"
	"github.com/safewonder/safewonder/internal/session"
	"github.com/safewonder/safewonder/internal/usecase/analyze"
)

type fakeAnalyzer struct {
	calls        int
	lastDesc     string
	analysis     domain.SituationAnalysis
	err          error
	shortCircuit bool
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ *session.Session, description string) (domain.SituationAnalysis, error) {
	f.calls++
	f.lastDesc = description
	if f.shortCircuit && len(description) < 10 {
		return domain.SituationAnalysis{}, analyze.ErrDescriptionTooShort
	}
	return f.analysis, f.err
}

type fakeTranslator struct {
	lastPhrase string
	lastSource string
	lastTarget string
	result     domain.TranslationResult
	err        error
}

func (f *fakeTranslator) Translate(_ context.Context, _ *session.Session, phrase, source, target string) (domain.TranslationResult, error) {
	f.lastPhrase = phrase
	f.lastSource = source
	f.lastTarget = target
	return f.result, f.err
}

type fakeKnowledge struct {
	countries []domain.Country
}

func (f *fakeKnowledge) Countries() []domain.Country { return f.countries }

func (f *fakeKnowledge) Resolve(idOrName string) (domain.Country, bool) {
	for _, c := range f.countries {
		if strings.EqualFold(c.ID, idOrName) || strings.EqualFold(c.Name, idOrName) {
			return c, true
		}
	}
	return domain.Country{}, false
}

type fakeMarkdownWriter struct {
	artifact markdown.Artifact
	calls    int
}

func (f *fakeMarkdownWriter) Write(_ context.Context, artifact markdown.Artifact) (string, error) {
	f.calls++
	f.artifact = artifact
	return "out/report.md", nil
}

type fakeJSONWriter struct {
	artifact jsonout.Artifact
	calls    int
}

func (f *fakeJSONWriter) Write(_ context.Context, artifact jsonout.Artifact) (string, error) {
	f.calls++
	f.artifact = artifact
	return "out/report.json", nil
}

func sampleKnowledge() *fakeKnowledge {
	return &fakeKnowledge{countries: []domain.Country{
		{ID: "IN", Name: "India", LocalPhrases: map[string]string{"help": "Madad kijiye", "call police": "Police ko bulao"}},
		{ID: "JP", Name: "Japan"},
	}}
}

func sampleAnalysis() domain.SituationAnalysis {
	return domain.SituationAnalysis{
		RiskScore:       40,
		Tier:            domain.TierMedium,
		PatternMatched:  "Taxi Overcharge",
		RiskExplanation: "The fare is inflated.",
		WhatToDo:        []string{"Insist on the meter"},
	}
}

type testDeps struct {
	deps     cli.Dependencies
	analyzer *fakeAnalyzer
	trans    *fakeTranslator
	md       *fakeMarkdownWriter
	js       *fakeJSONWriter
	out      *bytes.Buffer
	errOut   *bytes.Buffer
}

func newTestDeps() *testDeps {
	analyzer := &fakeAnalyzer{analysis: sampleAnalysis()}
	trans := &fakeTranslator{result: domain.TranslationResult{
		TranslatedText: "Madad kijiye",
		Pronunciation:  "MUH-dud KEE-jee-yay",
		ToneGuidance:   "Speak clearly",
	}}
	md := &fakeMarkdownWriter{}
	js := &fakeJSONWriter{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	return &testDeps{
		deps: cli.Dependencies{
			Analyzer:       analyzer,
			Translator:     trans,
			Knowledge:      sampleKnowledge(),
			MarkdownWriter: md,
			JSONWriter:     js,
			Args:           cli.Arguments{OutWriter: out, ErrWriter: errOut, InReader: strings.NewReader("")},
			DefaultProfile: domain.UserProfile{Name: "Asha", DestinationCountry: "India", NativeLanguage: "English"},
			Version:        "v1.2.3",
			IsTerminal:     func() bool { return true },
		},
		analyzer: analyzer,
		trans:    trans,
		md:       md,
		js:       js,
		out:      out,
		errOut:   errOut,
	}
}

func execute(t *testing.T, td *testDeps, args ...string) error {
	t.Helper()
	root := cli.NewRootCommand(td.deps)
	root.SetArgs(args)
	return root.Execute()
}

func TestVersionFlag(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "--version")

	assert.ErrorIs(t, err, cli.ErrVersionRequested)
	assert.Contains(t, td.out.String(), "v1.2.3")
}

func TestAnalyzePrintsMarkdown(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "analyze", "the", "taxi", "driver", "is", "overcharging")

	require.NoError(t, err)
	assert.Equal(t, "the taxi driver is overcharging", td.analyzer.lastDesc)
	assert.Contains(t, td.out.String(), "Risk Score: 40/100")
	assert.Contains(t, td.out.String(), "Taxi Overcharge")
	assert.Equal(t, 0, td.md.calls, "no report saved without --out")
}

func TestAnalyzeJSONOutput(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "analyze", "--json", "the taxi driver is overcharging")

	require.NoError(t, err)
	assert.Contains(t, td.out.String(), `"riskScore": 40`)
}

func TestAnalyzeSavesReport(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "analyze", "--out", "reports", "the taxi driver is overcharging")

	require.NoError(t, err)
	assert.Equal(t, 1, td.md.calls)
	assert.Equal(t, "reports", td.md.artifact.OutputDir)
	assert.Equal(t, "IN", td.md.artifact.CountryID)
	assert.Contains(t, td.errOut.String(), "report saved to out/report.md")
}

func TestAnalyzeSaveFlagUsesDefaultOutput(t *testing.T) {
	td := newTestDeps()
	td.deps.DefaultOutput = "configured-out"

	err := execute(t, td, "analyze", "--save", "the taxi driver is overcharging")

	require.NoError(t, err)
	assert.Equal(t, 1, td.md.calls)
	assert.Equal(t, "configured-out", td.md.artifact.OutputDir)
}

func TestAnalyzeSavesJSONReport(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "analyze", "--json", "--out", "reports", "the taxi driver is overcharging")

	require.NoError(t, err)
	assert.Equal(t, 1, td.js.calls)
	assert.Equal(t, 0, td.md.calls)
}

func TestAnalyzeRequiresDescription(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "analyze")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "describe the situation")
}

func TestAnalyzeUnknownCountry(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "analyze", "--country", "Atlantis", "something happened here")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown country "Atlantis"`)
	assert.Contains(t, err.Error(), "India, Japan")
}

func TestAnalyzeRequiresProfileName(t *testing.T) {
	td := newTestDeps()
	td.deps.DefaultProfile.Name = "A"

	err := execute(t, td, "analyze", "something suspicious happened")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 characters")
}

func TestAnalyzeInteractiveLoop(t *testing.T) {
	td := newTestDeps()
	td.analyzer.shortCircuit = true
	td.deps.Args.InReader = strings.NewReader("short\nthe taxi driver is overcharging me\nquit\n")

	err := execute(t, td, "analyze", "--interactive")

	require.NoError(t, err)
	assert.Equal(t, 2, td.analyzer.calls)
	assert.Contains(t, td.out.String(), "a little more detail")
	assert.Contains(t, td.out.String(), "Risk Score: 40/100")
}

func TestAnalyzeInteractiveRequiresTTY(t *testing.T) {
	td := newTestDeps()
	td.deps.IsTerminal = func() bool { return false }

	err := execute(t, td, "analyze", "--interactive")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a terminal")
}

func TestTranslate(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "translate", "--to", "Hindi", "Help", "me", "please")

	require.NoError(t, err)
	assert.Equal(t, "Help me please", td.trans.lastPhrase)
	assert.Equal(t, "English", td.trans.lastSource)
	assert.Equal(t, "Hindi", td.trans.lastTarget)
	assert.Contains(t, td.out.String(), "Madad kijiye")
	assert.Contains(t, td.out.String(), "Pronunciation: MUH-dud KEE-jee-yay")
}

func TestTranslateRequiresTarget(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "translate", "Help me")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--to is required")
}

func TestCountries(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "countries")

	require.NoError(t, err)
	assert.Contains(t, td.out.String(), "IN")
	assert.Contains(t, td.out.String(), "India")
	assert.Contains(t, td.out.String(), "Japan")
}

func TestPhrasesSorted(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "phrases")

	require.NoError(t, err)
	output := td.out.String()
	assert.Less(t, strings.Index(output, "call police"), strings.Index(output, "help"))
	assert.Contains(t, output, "Madad kijiye")
}

func TestPhrasesEmptyCountry(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "phrases", "--country", "JP")

	require.NoError(t, err)
	assert.Contains(t, td.out.String(), "No phrases recorded for Japan.")
}

func TestProfileShow(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "profile", "show")

	require.NoError(t, err)
	assert.Contains(t, td.out.String(), "Asha")
	assert.Contains(t, td.out.String(), "India")
	assert.Contains(t, td.out.String(), "(not set)")
}

func TestProfileSetPreviewsMerge(t *testing.T) {
	td := newTestDeps()

	err := execute(t, td, "profile", "set", "--destination-country", "Japan", "--age-range", "25-34")

	require.NoError(t, err)
	assert.Contains(t, td.out.String(), "Japan")
	assert.Contains(t, td.out.String(), "25-34")
	assert.Contains(t, td.out.String(), "Asha")
	assert.Contains(t, td.errOut.String(), "not persisted")
}
