package config

import "strings"

// Config represents the full application configuration.
type Config struct {
	Groq          GroqConfig          `yaml:"groq"`
	HTTP          HTTPConfig          `yaml:"http"`
	Knowledge     KnowledgeConfig     `yaml:"knowledge"`
	Analysis      AnalysisConfig      `yaml:"analysis"`
	Output        OutputConfig        `yaml:"output"`
	Profile       ProfileConfig       `yaml:"profile"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// GroqConfig configures the Groq LLM provider. When no API key resolves
// the application falls back to the offline static provider.
type GroqConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL"`
}

// ResolvedAPIKey returns the API key, treating an unexpanded ${VAR}
// placeholder as absent.
func (g GroqConfig) ResolvedAPIKey() string {
	if strings.HasPrefix(g.APIKey, "$") {
		return ""
	}
	return g.APIKey
}

// HTTPConfig holds global HTTP client settings. Durations are strings so
// config files and environment variables can say "60s" or "2m".
type HTTPConfig struct {
	Timeout           string  `yaml:"timeout"`
	MaxRetries        int     `yaml:"maxRetries"`
	InitialBackoff    string  `yaml:"initialBackoff"`
	MaxBackoff        string  `yaml:"maxBackoff"`
	BackoffMultiplier float64 `yaml:"backoffMultiplier"`
}

// KnowledgeConfig locates the safety knowledge base file.
type KnowledgeConfig struct {
	Path string `yaml:"path"`
}

// AnalysisConfig tunes the analysis pipeline.
type AnalysisConfig struct {
	MaxContextPatterns  int `yaml:"maxContextPatterns"`
	MinDescriptionChars int `yaml:"minDescriptionChars"`
}

// OutputConfig configures where saved reports land.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// ProfileConfig seeds the traveler profile from the config file so
// returning users skip onboarding prompts.
type ProfileConfig struct {
	Name               string `yaml:"name"`
	Gender             string `yaml:"gender"`
	AgeRange           string `yaml:"ageRange"`
	NativeLanguage     string `yaml:"nativeLanguage"`
	DestinationCountry string `yaml:"destinationCountry"`
	DestinationCity    string `yaml:"destinationCity"`
	Interest           string `yaml:"interest"`
	SafetyPreference   string `yaml:"safetyPreference"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Level         string `yaml:"level"`  // debug, info, error
	Format        string `yaml:"format"` // json, human
	RedactAPIKeys bool   `yaml:"redactAPIKeys"`
}

// Merge combines multiple configuration instances, prioritising the latter ones.
func Merge(configs ...Config) Config {
	result := Config{}
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}

func merge(base, overlay Config) Config {
	result := base

	result.Groq = chooseGroq(base.Groq, overlay.Groq)
	result.HTTP = chooseHTTP(base.HTTP, overlay.HTTP)
	result.Knowledge = chooseKnowledge(base.Knowledge, overlay.Knowledge)
	result.Analysis = chooseAnalysis(base.Analysis, overlay.Analysis)
	result.Output = chooseOutput(base.Output, overlay.Output)
	result.Profile = mergeProfile(base.Profile, overlay.Profile)
	result.Observability = chooseObservability(base.Observability, overlay.Observability)

	return result
}

func chooseGroq(base, overlay GroqConfig) GroqConfig {
	result := base
	if overlay.APIKey != "" {
		result.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		result.Model = overlay.Model
	}
	if overlay.BaseURL != "" {
		result.BaseURL = overlay.BaseURL
	}
	return result
}

func chooseHTTP(base, overlay HTTPConfig) HTTPConfig {
	if overlay.Timeout != "" || overlay.MaxRetries != 0 || overlay.InitialBackoff != "" || overlay.MaxBackoff != "" || overlay.BackoffMultiplier != 0 {
		return overlay
	}
	return base
}

func chooseKnowledge(base, overlay KnowledgeConfig) KnowledgeConfig {
	if overlay.Path != "" {
		return overlay
	}
	return base
}

func chooseAnalysis(base, overlay AnalysisConfig) AnalysisConfig {
	if overlay.MaxContextPatterns != 0 || overlay.MinDescriptionChars != 0 {
		return overlay
	}
	return base
}

func chooseOutput(base, overlay OutputConfig) OutputConfig {
	if overlay.Directory != "" {
		return overlay
	}
	return base
}

func mergeProfile(base, overlay ProfileConfig) ProfileConfig {
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

func chooseObservability(base, overlay ObservabilityConfig) ObservabilityConfig {
	result := base
	if overlay.Logging.Enabled || overlay.Logging.Level != "" || overlay.Logging.Format != "" {
		result.Logging = overlay.Logging
	}
	return result
}
