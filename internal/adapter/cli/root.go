package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/safewonder/safewonder/internal/adapter/output/jsonout"
	"github.com/safewonder/safewonder/internal/adapter/output/markdown"
	"github.com/safewonder/safewonder/internal/domain"
	"github.com/safewonder/safewonder/internal/session"
	"github.com/safewonder/safewonder/internal/usecase/analyze"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Analyzer defines the dependency required to run the analyze command.
type Analyzer interface {
	Analyze(ctx context.Context, sess *session.Session, description string) (domain.SituationAnalysis, error)
}

// Translator defines the dependency required to run the translate command.
type Translator interface {
	Translate(ctx context.Context, sess *session.Session, phrase, source, target string) (domain.TranslationResult, error)
}

// KnowledgeBase is the read-only country lookup the commands need.
type KnowledgeBase interface {
	Countries() []domain.Country
	Resolve(idOrName string) (domain.Country, bool)
}

// MarkdownWriter persists Markdown reports.
type MarkdownWriter interface {
	Write(ctx context.Context, artifact markdown.Artifact) (string, error)
}

// JSONWriter persists JSON reports.
type JSONWriter interface {
	Write(ctx context.Context, artifact jsonout.Artifact) (string, error)
}

// Arguments encapsulates IO injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
	InReader  io.Reader
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Analyzer       Analyzer
	Translator     Translator
	Knowledge      KnowledgeBase
	MarkdownWriter MarkdownWriter
	JSONWriter     JSONWriter
	Args           Arguments
	DefaultProfile domain.UserProfile
	DefaultOutput  string
	Version        string

	// IsTerminal reports whether stdin is a TTY. Overridable in tests.
	IsTerminal func() bool
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}
	if deps.IsTerminal == nil {
		deps.IsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	}

	root := &cobra.Command{
		Use:   "sw",
		Short: "Travel safety assistant CLI",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	if deps.Args.InReader == nil {
		deps.Args.InReader = os.Stdin
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(analyzeCommand(deps))
	root.AddCommand(translateCommand(deps))
	root.AddCommand(countriesCommand(deps))
	root.AddCommand(phrasesCommand(deps))
	root.AddCommand(profileCommand(deps))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func analyzeCommand(deps Dependencies) *cobra.Command {
	var countryFlag string
	var cityFlag string
	var asJSON bool
	var outputDir string
	var save bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "analyze [description]",
		Short: "Assess the safety of a situation at your destination",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := overlayProfile(deps.DefaultProfile, countryFlag, cityFlag)
			if err := validateProfile(profile); err != nil {
				return err
			}

			country, err := resolveCountry(deps.Knowledge, profile.DestinationCountry)
			if err != nil {
				return err
			}
			sess := session.New(profile, country)

			if interactive {
				if !deps.IsTerminal() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				return runInteractive(cmd, deps, sess, asJSON)
			}

			description := strings.TrimSpace(strings.Join(args, " "))
			if description == "" {
				return fmt.Errorf("describe the situation as an argument, or use --interactive")
			}

			analysis, err := deps.Analyzer.Analyze(cmd.Context(), sess, description)
			if err != nil {
				return err
			}
			if err := printAnalysis(cmd, analysis, asJSON); err != nil {
				return err
			}
			if save && outputDir == "" {
				outputDir = deps.DefaultOutput
				if outputDir == "" {
					outputDir = "out"
				}
			}
			if outputDir != "" {
				return saveAnalysis(cmd, deps, outputDir, country.ID, analysis, asJSON)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&countryFlag, "country", "", "Destination country id or name (overrides profile)")
	cmd.Flags().StringVar(&cityFlag, "city", "", "Destination city (overrides profile)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the analysis as JSON")
	cmd.Flags().StringVar(&outputDir, "out", "", "Directory to save the report in")
	cmd.Flags().BoolVar(&save, "save", false, "Save the report to the configured output directory")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Read situations from the terminal in a loop")

	return cmd
}

func runInteractive(cmd *cobra.Command, deps Dependencies, sess *session.Session, asJSON bool) error {
	scanner := bufio.NewScanner(deps.Args.InReader)
	out := cmd.OutOrStdout()

	for {
		_, _ = fmt.Fprintf(out, "\nDescribe your situation in %s (or 'quit'): ", sess.Country.Name)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
			return nil
		}

		analysis, err := deps.Analyzer.Analyze(cmd.Context(), sess, line)
		if errors.Is(err, analyze.ErrDescriptionTooShort) {
			_, _ = fmt.Fprintln(out, "Please describe the situation in a little more detail.")
			continue
		}
		if err != nil {
			return err
		}
		if err := printAnalysis(cmd, analysis, asJSON); err != nil {
			return err
		}
	}
}

func printAnalysis(cmd *cobra.Command, analysis domain.SituationAnalysis, asJSON bool) error {
	if asJSON {
		rendered, err := jsonout.Render(analysis)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), markdown.Render(analysis))
	return nil
}

func saveAnalysis(cmd *cobra.Command, deps Dependencies, dir, countryID string, analysis domain.SituationAnalysis, asJSON bool) error {
	var path string
	var err error
	if asJSON {
		path, err = deps.JSONWriter.Write(cmd.Context(), jsonout.Artifact{OutputDir: dir, CountryID: countryID, Analysis: analysis})
	} else {
		path, err = deps.MarkdownWriter.Write(cmd.Context(), markdown.Artifact{OutputDir: dir, CountryID: countryID, Analysis: analysis})
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "report saved to %s\n", path)
	return nil
}

func translateCommand(deps Dependencies) *cobra.Command {
	var from string
	var to string
	var countryFlag string

	cmd := &cobra.Command{
		Use:   "translate <phrase>",
		Short: "Translate a phrase with cultural guidance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := overlayProfile(deps.DefaultProfile, countryFlag, "")
			if err := validateProfile(profile); err != nil {
				return err
			}
			country, err := resolveCountry(deps.Knowledge, profile.DestinationCountry)
			if err != nil {
				return err
			}
			sess := session.New(profile, country)

			source := from
			if source == "" {
				source = profile.NativeLanguage
			}
			if source == "" {
				source = "English"
			}
			if to == "" {
				return fmt.Errorf("--to is required")
			}

			result, err := deps.Translator.Translate(cmd.Context(), sess, strings.Join(args, " "), source, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\n", result.TranslatedText)
			if result.Pronunciation != "" {
				_, _ = fmt.Fprintf(out, "Pronunciation: %s\n", result.Pronunciation)
			}
			if result.ToneGuidance != "" {
				_, _ = fmt.Fprintf(out, "Delivery: %s\n", result.ToneGuidance)
			}
			if result.CulturalNotes != "" && !strings.EqualFold(result.CulturalNotes, "none") {
				_, _ = fmt.Fprintf(out, "Cultural note: %s\n", result.CulturalNotes)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source language (defaults to the profile's native language)")
	cmd.Flags().StringVar(&to, "to", "", "Target language")
	cmd.Flags().StringVar(&countryFlag, "country", "", "Destination country id or name (overrides profile)")

	return cmd
}

func countriesCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List countries in the safety knowledge base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, country := range deps.Knowledge.Countries() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", country.ID, country.Name)
			}
			return nil
		},
	}
}

func phrasesCommand(deps Dependencies) *cobra.Command {
	var countryFlag string

	cmd := &cobra.Command{
		Use:   "phrases",
		Short: "Show emergency phrases for the destination country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := countryFlag
			if target == "" {
				target = deps.DefaultProfile.DestinationCountry
			}
			country, err := resolveCountry(deps.Knowledge, target)
			if err != nil {
				return err
			}
			if len(country.LocalPhrases) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No phrases recorded for %s.\n", country.Name)
				return nil
			}

			keys := make([]string, 0, len(country.LocalPhrases))
			for k := range country.LocalPhrases {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", k, country.LocalPhrases[k])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&countryFlag, "country", "", "Country id or name (defaults to the profile destination)")

	return cmd
}

func profileCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect or adjust the traveler profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved traveler profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printProfile(cmd.OutOrStdout(), deps.DefaultProfile)
			return nil
		},
	}

	var set domain.UserProfile
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Preview profile changes (session-scoped; add them to sw.yaml to keep them)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			merged := mergeProfiles(deps.DefaultProfile, set)
			if err := validateProfile(merged); err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), merged)
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "profiles are not persisted; copy the values into the profile section of sw.yaml")
			return nil
		},
	}
	setCmd.Flags().StringVar(&set.Name, "name", "", "Traveler name")
	setCmd.Flags().StringVar(&set.Gender, "gender", "", "Gender")
	setCmd.Flags().StringVar(&set.AgeRange, "age-range", "", "Age range, e.g. 25-34")
	setCmd.Flags().StringVar(&set.NativeLanguage, "native-language", "", "Native language")
	setCmd.Flags().StringVar(&set.DestinationCountry, "destination-country", "", "Destination country")
	setCmd.Flags().StringVar(&set.DestinationCity, "destination-city", "", "Destination city")
	setCmd.Flags().StringVar(&set.Interest, "interest", "", "Travel interest")
	setCmd.Flags().StringVar(&set.SafetyPreference, "safety-preference", "", "Safety preference")

	cmd.AddCommand(show)
	cmd.AddCommand(setCmd)
	return cmd
}

func printProfile(out io.Writer, profile domain.UserProfile) {
	write := func(key, value string) {
		if value == "" {
			value = "(not set)"
		}
		_, _ = fmt.Fprintf(out, "%-20s %s\n", key, value)
	}
	write("name", profile.Name)
	write("gender", profile.Gender)
	write("ageRange", profile.AgeRange)
	write("nativeLanguage", profile.NativeLanguage)
	write("destinationCountry", profile.DestinationCountry)
	write("destinationCity", profile.DestinationCity)
	write("interest", profile.Interest)
	write("safetyPreference", profile.SafetyPreference)
}

func overlayProfile(base domain.UserProfile, country, city string) domain.UserProfile {
	result := base
	if country != "" {
		result.DestinationCountry = country
	}
	if city != "" {
		result.DestinationCity = city
	}
	return result
}

func mergeProfiles(base, overlay domain.UserProfile) domain.UserProfile {
	result := base
	if overlay.Name != "" {
		result.Name = overlay.Name
	}
	if overlay.Gender != "" {
		result.Gender = overlay.Gender
	}
	if overlay.AgeRange != "" {
		result.AgeRange = overlay.AgeRange
	}
	if overlay.NativeLanguage != "" {
		result.NativeLanguage = overlay.NativeLanguage
	}
	if overlay.DestinationCountry != "" {
		result.DestinationCountry = overlay.DestinationCountry
	}
	if overlay.DestinationCity != "" {
		result.DestinationCity = overlay.DestinationCity
	}
	if overlay.Interest != "" {
		result.Interest = overlay.Interest
	}
	if overlay.SafetyPreference != "" {
		result.SafetyPreference = overlay.SafetyPreference
	}
	return result
}

// validateProfile mirrors the onboarding rules: a real name and a
// destination are required before any command that builds a session.
func validateProfile(profile domain.UserProfile) error {
	if len(strings.TrimSpace(profile.Name)) < 2 {
		return fmt.Errorf("profile name must be at least 2 characters; set profile.name in sw.yaml")
	}
	if strings.TrimSpace(profile.DestinationCountry) == "" {
		return fmt.Errorf("destination country is required; set profile.destinationCountry or pass --country")
	}
	return nil
}

func resolveCountry(kb KnowledgeBase, idOrName string) (domain.Country, error) {
	country, ok := kb.Resolve(idOrName)
	if !ok {
		var names []string
		for _, c := range kb.Countries() {
			names = append(names, c.Name)
		}
		return domain.Country{}, fmt.Errorf("unknown country %q; available: %s", idOrName, strings.Join(names, ", "))
	}
	return country, nil
}
