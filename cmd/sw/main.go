package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/safewonder/safewonder/internal/adapter/cli"
	"github.com/safewonder/safewonder/internal/adapter/llm/groq"
	llmhttp "github.com/safewonder/safewonder/internal/adapter/llm/http"
	"github.com/safewonder/safewonder/internal/adapter/llm/static"
	"github.com/safewonder/safewonder/internal/adapter/output/jsonout"
	"github.com/safewonder/safewonder/internal/adapter/output/markdown"
	"github.com/safewonder/safewonder/internal/config"
	"github.com/safewonder/safewonder/internal/domain"
	"github.com/safewonder/safewonder/internal/knowledge"
	"github.com/safewonder/safewonder/internal/usecase/analyze"
	"github.com/safewonder/safewonder/internal/usecase/translate"
	"github.com/safewonder/safewonder/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "sw",
		EnvPrefix:   "SW",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	base, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		return err
	}

	logger := buildLogger(cfg.Observability.Logging)
	client, err := buildClient(cfg, logger)
	if err != nil {
		return err
	}

	analyzerOpts := analyze.DefaultOptions()
	if cfg.Analysis.MaxContextPatterns > 0 {
		analyzerOpts.MaxContextPatterns = cfg.Analysis.MaxContextPatterns
	}
	if cfg.Analysis.MinDescriptionChars > 0 {
		analyzerOpts.MinDescriptionChars = cfg.Analysis.MinDescriptionChars
	}
	analyzer := analyze.New(client, analyzerOpts)
	translator := translate.New(client, nil, translate.DefaultOptions())

	nowFunc := func() string {
		return time.Now().UTC().Format("20060102T150405Z")
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Analyzer:       analyzer,
		Translator:     translator,
		Knowledge:      base,
		MarkdownWriter: markdown.NewWriter(nowFunc),
		JSONWriter:     jsonout.NewWriter(nowFunc),
		DefaultProfile: profileFromConfig(cfg.Profile),
		DefaultOutput:  cfg.Output.Directory,
		Version:        version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

// buildClient selects the Groq client when an API key resolves, else the
// offline static provider so the CLI still works without credentials.
func buildClient(cfg config.Config, logger llmhttp.Logger) (analyze.LLMClient, error) {
	apiKey := cfg.Groq.ResolvedAPIKey()
	if apiKey == "" {
		log.Println("no Groq API key configured; using the offline static provider")
		return static.NewProvider(cfg.Groq.Model), nil
	}

	return groq.NewClient(apiKey, cfg.Groq.Model,
		groq.WithBaseURL(cfg.Groq.BaseURL),
		groq.WithTimeout(cfg.HTTP.ClientTimeout()),
		groq.WithRetryConfig(cfg.HTTP.RetryConfig()),
		groq.WithLogger(logger),
	)
}

func buildLogger(cfg config.LoggingConfig) llmhttp.Logger {
	if !cfg.Enabled {
		return llmhttp.NopLogger{}
	}

	level := llmhttp.LogLevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = llmhttp.LogLevelDebug
	case "error":
		level = llmhttp.LogLevelError
	}

	format := llmhttp.LogFormatHuman
	if strings.EqualFold(cfg.Format, "json") {
		format = llmhttp.LogFormatJSON
	}

	return llmhttp.NewDefaultLogger(level, format, cfg.RedactAPIKeys)
}

func profileFromConfig(cfg config.ProfileConfig) domain.UserProfile {
	return domain.UserProfile{
		Name:               cfg.Name,
		Gender:             cfg.Gender,
		AgeRange:           cfg.AgeRange,
		NativeLanguage:     cfg.NativeLanguage,
		DestinationCountry: cfg.DestinationCountry,
		DestinationCity:    cfg.DestinationCity,
		Interest:           cfg.Interest,
		SafetyPreference:   cfg.SafetyPreference,
	}
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sw"))
	}
	return paths
}
