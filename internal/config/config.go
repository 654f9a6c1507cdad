// Package config loads and resolves planreview configuration from a YAML
// file, environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fandolabs/planreview/internal/invoker"
	"github.com/fandolabs/planreview/internal/profile"
	"github.com/fandolabs/planreview/internal/terminal"
)

// ConfigFileName is the per-project configuration file.
const ConfigFileName = ".planreview.yaml"

// Duration wraps time.Duration with YAML unmarshaling that accepts either a
// Go duration string ("10m", "90s") or a bare number of seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid duration: expected a scalar, got %v", value.Kind)
	}
	raw := value.Value

	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		*d = Duration(time.Duration(secs * float64(time.Second)))
		return nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: use a Go duration like \"10m\" or seconds like 600", raw)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config holds settings parsed from the configuration file. Pointer fields
// distinguish "not set" from zero values during resolution.
type Config struct {
	ReviewerCommand *string   `yaml:"reviewer_command"`
	Timeout         *Duration `yaml:"timeout"`
	Concurrency     *int      `yaml:"concurrency"`
	MinMatches      *int      `yaml:"min_matches"`
	SecurityLevel   *string   `yaml:"security_level"`
	Profiles        []string  `yaml:"profiles"`
	PromptDir       *string   `yaml:"prompt_dir"`
	Iterations      *int      `yaml:"iterations"`
}

// knownKeys lists valid configuration keys for typo suggestions.
var knownKeys = []string{
	"reviewer_command", "timeout", "concurrency", "min_matches",
	"security_level", "profiles", "prompt_dir", "iterations",
}

// Load reads the configuration file from dir. A missing file is not an
// error; an empty *Config is returned. Unknown keys produce warnings with a
// suggestion when a known key is close.
func Load(dir string, logger *terminal.Logger) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	warnUnknownKeys(data, logger)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks configuration values for internal consistency.
func (c *Config) Validate() error {
	if c.Timeout != nil && c.Timeout.Duration() <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.Concurrency != nil && *c.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	if c.MinMatches != nil && *c.MinMatches < 1 {
		return errors.New("min_matches must be at least 1")
	}
	if c.Iterations != nil && *c.Iterations < 1 {
		return errors.New("iterations must be at least 1")
	}
	if c.SecurityLevel != nil && !profile.ValidLevel(*c.SecurityLevel) {
		return fmt.Errorf("unknown security_level %q", *c.SecurityLevel)
	}
	return ValidateProfiles(c.Profiles)
}

// ValidateProfiles checks that every profile ID in the list is known and
// appears at most once. Each requested profile maps to exactly one reviewer
// outcome, so a repeated ID is a configuration mistake, not a request for
// two runs.
func ValidateProfiles(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := profile.ByID(id); !ok && id != profile.GenericID {
			return fmt.Errorf("unknown profile %q", id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate profile %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// warnUnknownKeys parses the top-level mapping and warns on unrecognized
// keys, suggesting the closest known key within edit distance 3.
func warnUnknownKeys(data []byte, logger *terminal.Logger) {
	if logger == nil {
		return
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil || len(root.Content) == 0 {
		return
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		if isKnownKey(key) {
			continue
		}
		if suggestion := closestKey(key); suggestion != "" {
			logger.Logf(terminal.StyleWarning, "unknown config key %q (did you mean %q?)", key, suggestion)
		} else {
			logger.Logf(terminal.StyleWarning, "unknown config key %q", key)
		}
	}
}

func isKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

func closestKey(key string) string {
	best := ""
	bestDist := 4
	for _, k := range knownKeys {
		if d := levenshtein(strings.ToLower(key), k); d < bestDist {
			best = k
			bestDist = d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// ResolvedConfig is the effective configuration after merging all sources.
type ResolvedConfig struct {
	ReviewerCommand string
	Timeout         time.Duration
	Concurrency     int
	MinMatches      int
	SecurityLevel   string
	Profiles        []string
	PromptDir       string
	Iterations      int
}

// Defaults returns the built-in configuration.
func Defaults() ResolvedConfig {
	return ResolvedConfig{
		ReviewerCommand: invoker.DefaultCommand,
		Timeout:         10 * time.Minute,
		Concurrency:     0,
		MinMatches:      profile.DefaultMinMatches,
		SecurityLevel:   "",
		Iterations:      1,
	}
}

// FlagState records which flags were set explicitly on the command line.
type FlagState struct {
	ReviewerCommand bool
	Timeout         bool
	Concurrency     bool
	MinMatches      bool
	SecurityLevel   bool
	Profiles        bool
	PromptDir       bool
	Iterations      bool
}

// EnvState holds configuration read from PLANREVIEW_* environment variables.
// Pointer fields are nil when the variable is unset or unparseable.
type EnvState struct {
	ReviewerCommand *string
	Timeout         *time.Duration
	Concurrency     *int
	MinMatches      *int
	SecurityLevel   *string
	PromptDir       *string
}

// LoadEnvState reads PLANREVIEW_* environment variables.
func LoadEnvState() EnvState {
	var env EnvState
	if v := os.Getenv("PLANREVIEW_REVIEWER_CMD"); v != "" {
		env.ReviewerCommand = &v
	}
	if v := os.Getenv("PLANREVIEW_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			env.Timeout = &d
		} else if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			d := time.Duration(secs) * time.Second
			env.Timeout = &d
		}
	}
	if v := os.Getenv("PLANREVIEW_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			env.Concurrency = &n
		}
	}
	if v := os.Getenv("PLANREVIEW_MIN_MATCHES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			env.MinMatches = &n
		}
	}
	if v := os.Getenv("PLANREVIEW_SECURITY_LEVEL"); v != "" {
		if profile.ValidLevel(v) {
			env.SecurityLevel = &v
		}
	}
	if v := os.Getenv("PLANREVIEW_PROMPT_DIR"); v != "" {
		env.PromptDir = &v
	}
	return env
}

// Resolve merges configuration sources with precedence:
// flag > environment > config file > default. The values parameter carries
// the flag values; flags selects which of them were explicitly set.
func Resolve(cfg *Config, env EnvState, flags FlagState, values ResolvedConfig) ResolvedConfig {
	resolved := Defaults()
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.ReviewerCommand != nil {
		resolved.ReviewerCommand = *cfg.ReviewerCommand
	}
	if env.ReviewerCommand != nil {
		resolved.ReviewerCommand = *env.ReviewerCommand
	}
	if flags.ReviewerCommand {
		resolved.ReviewerCommand = values.ReviewerCommand
	}

	if cfg.Timeout != nil {
		resolved.Timeout = cfg.Timeout.Duration()
	}
	if env.Timeout != nil {
		resolved.Timeout = *env.Timeout
	}
	if flags.Timeout {
		resolved.Timeout = values.Timeout
	}

	if cfg.Concurrency != nil {
		resolved.Concurrency = *cfg.Concurrency
	}
	if env.Concurrency != nil {
		resolved.Concurrency = *env.Concurrency
	}
	if flags.Concurrency {
		resolved.Concurrency = values.Concurrency
	}

	if cfg.MinMatches != nil {
		resolved.MinMatches = *cfg.MinMatches
	}
	if env.MinMatches != nil {
		resolved.MinMatches = *env.MinMatches
	}
	if flags.MinMatches {
		resolved.MinMatches = values.MinMatches
	}

	if cfg.SecurityLevel != nil {
		resolved.SecurityLevel = *cfg.SecurityLevel
	}
	if env.SecurityLevel != nil {
		resolved.SecurityLevel = *env.SecurityLevel
	}
	if flags.SecurityLevel {
		resolved.SecurityLevel = values.SecurityLevel
	}

	if len(cfg.Profiles) > 0 {
		resolved.Profiles = cfg.Profiles
	}
	if flags.Profiles {
		resolved.Profiles = values.Profiles
	}

	if cfg.PromptDir != nil {
		resolved.PromptDir = *cfg.PromptDir
	}
	if env.PromptDir != nil {
		resolved.PromptDir = *env.PromptDir
	}
	if flags.PromptDir {
		resolved.PromptDir = values.PromptDir
	}

	if cfg.Iterations != nil {
		resolved.Iterations = *cfg.Iterations
	}
	if flags.Iterations {
		resolved.Iterations = values.Iterations
	}

	return resolved
}
