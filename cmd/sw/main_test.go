package main

import (
	"testing"

	llmhttp "github.com/safewonder/safewonder/internal/adapter/llm/http"
	"github.com/safewonder/safewonder/internal/adapter/llm/static"
	"github.com/safewonder/safewonder/internal/config"
)

func TestBuildClientFallsBackToStatic(t *testing.T) {
	cfg := config.Config{Groq: config.GroqConfig{Model: "llama-3.1-70b-versatile"}}

	client, err := buildClient(cfg, llmhttp.NopLogger{})
	if err != nil {
		t.Fatalf("buildClient: %v", err)
	}
	if _, ok := client.(*static.Provider); !ok {
		t.Fatalf("expected static provider without an API key, got %T", client)
	}
}

func TestBuildClientUnexpandedPlaceholderFallsBackToStatic(t *testing.T) {
	cfg := config.Config{Groq: config.GroqConfig{APIKey: "${GROQ_API_KEY}", Model: "llama-3.1-70b-versatile"}}

	client, err := buildClient(cfg, llmhttp.NopLogger{})
	if err != nil {
		t.Fatalf("buildClient: %v", err)
	}
	if _, ok := client.(*static.Provider); !ok {
		t.Fatalf("expected static provider for unexpanded placeholder, got %T", client)
	}
}

func TestBuildClientUsesGroqWithKey(t *testing.T) {
	cfg := config.Config{
		Groq: config.GroqConfig{APIKey: "gsk-test", Model: "llama-3.1-70b-versatile", BaseURL: "https://api.groq.com/openai"},
		HTTP: config.HTTPConfig{Timeout: "30s"},
	}

	client, err := buildClient(cfg, llmhttp.NopLogger{})
	if err != nil {
		t.Fatalf("buildClient: %v", err)
	}
	if _, ok := client.(*static.Provider); ok {
		t.Fatal("expected the groq client when an API key is configured")
	}
}

func TestBuildLogger(t *testing.T) {
	if _, ok := buildLogger(config.LoggingConfig{Enabled: false}).(llmhttp.NopLogger); !ok {
		t.Fatal("disabled logging should produce the nop logger")
	}
	if _, ok := buildLogger(config.LoggingConfig{Enabled: true, Level: "debug", Format: "json"}).(*llmhttp.DefaultLogger); !ok {
		t.Fatal("enabled logging should produce the default logger")
	}
}

func TestProfileFromConfig(t *testing.T) {
	profile := profileFromConfig(config.ProfileConfig{
		Name:               "Asha",
		DestinationCountry: "India",
		NativeLanguage:     "English",
	})

	if profile.Name != "Asha" || profile.DestinationCountry != "India" || profile.NativeLanguage != "English" {
		t.Fatalf("unexpected profile mapping: %+v", profile)
	}
}
