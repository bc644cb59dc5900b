package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	llmhttp "github.com/safewonder/safewonder/internal/adapter/llm/http"
)

// LoaderOptions describes how configuration should be discovered.
type LoaderOptions struct {
	ConfigPaths []string
	FileName    string
	EnvPrefix   string
}

// Load returns the merged configuration from files and environment variables.
func Load(opts LoaderOptions) (Config, error) {
	v := viper.New()

	name := opts.FileName
	if name == "" {
		name = "sw"
	}

	configFile := locateConfigFile(name, opts.ConfigPaths)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(name)
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = "SW"
	}
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AllowEmptyEnv(true)

	setDefaults(v)

	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return expandEnvVars(cfg), nil
}

// RetryConfig converts the string-typed HTTP settings into the retry
// configuration used by the LLM client. Unparseable durations fall back
// to the client defaults.
func (c HTTPConfig) RetryConfig() llmhttp.RetryConfig {
	result := llmhttp.DefaultRetryConfig()
	if c.MaxRetries > 0 {
		result.MaxRetries = c.MaxRetries
	}
	if d, err := time.ParseDuration(c.InitialBackoff); err == nil && d > 0 {
		result.InitialBackoff = d
	}
	if d, err := time.ParseDuration(c.MaxBackoff); err == nil && d > 0 {
		result.MaxBackoff = d
	}
	if c.BackoffMultiplier > 1 {
		result.Multiplier = c.BackoffMultiplier
	}
	return result
}

// ClientTimeout parses the HTTP timeout, defaulting when unset or invalid.
func (c HTTPConfig) ClientTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	return 60 * time.Second
}

// expandEnvVars expands ${VAR} and $VAR syntax in configuration strings.
func expandEnvVars(cfg Config) Config {
	cfg.Groq.APIKey = expandEnvString(cfg.Groq.APIKey)
	cfg.Groq.Model = expandEnvString(cfg.Groq.Model)
	cfg.Groq.BaseURL = expandEnvString(cfg.Groq.BaseURL)

	cfg.HTTP.Timeout = expandEnvString(cfg.HTTP.Timeout)
	cfg.HTTP.InitialBackoff = expandEnvString(cfg.HTTP.InitialBackoff)
	cfg.HTTP.MaxBackoff = expandEnvString(cfg.HTTP.MaxBackoff)

	cfg.Knowledge.Path = expandEnvString(cfg.Knowledge.Path)
	cfg.Output.Directory = expandEnvString(cfg.Output.Directory)

	cfg.Observability.Logging.Level = expandEnvString(cfg.Observability.Logging.Level)
	cfg.Observability.Logging.Format = expandEnvString(cfg.Observability.Logging.Format)

	return cfg
}

// expandEnvString replaces ${VAR} or $VAR with environment variable values.
func expandEnvString(s string) string {
	if s == "" {
		return s
	}

	re := regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

func locateConfigFile(name string, paths []string) string {
	searchPaths := append([]string{}, paths...)
	searchPaths = append(searchPaths, ".")
	for _, dir := range searchPaths {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name+".yaml")
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("groq.model", "llama-3.1-70b-versatile")
	v.SetDefault("groq.baseURL", "https://api.groq.com/openai")
	v.SetDefault("groq.apiKey", "${GROQ_API_KEY}")

	v.SetDefault("http.timeout", "60s")
	v.SetDefault("http.maxRetries", 3)
	v.SetDefault("http.initialBackoff", "2s")
	v.SetDefault("http.maxBackoff", "16s")
	v.SetDefault("http.backoffMultiplier", 2.0)

	v.SetDefault("knowledge.path", "database.json")

	v.SetDefault("analysis.maxContextPatterns", 5)
	v.SetDefault("analysis.minDescriptionChars", 10)

	v.SetDefault("output.directory", "out")

	v.SetDefault("observability.logging.enabled", true)
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "human")
	v.SetDefault("observability.logging.redactAPIKeys", true)
}
