package model

import "time"

// Config holds the complete proofmap configuration
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Cache    CacheConfig    `yaml:"cache" json:"cache"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	LLM      LLMConfig      `yaml:"llm" json:"llm"`
}

// AnalysisConfig tunes the heuristic thresholds of the core pipeline.
// The cutoffs are deliberately configurable: there is no canonical
// definition of "complex enough to flag" or "long enough to split".
type AnalysisConfig struct {
	// MinStepLength is the accumulated character count after which a
	// new sentence starts a new step even without a discourse marker.
	MinStepLength int `yaml:"min_step_length" json:"min_step_length"`

	// LeapComplexityCutoff is the complexity score above which a
	// hedging phrase ("clearly", "obviously", ...) is flagged.
	LeapComplexityCutoff int `yaml:"leap_complexity_cutoff" json:"leap_complexity_cutoff"`

	// ExtraProperties extends the built-in property vocabulary.
	ExtraProperties []string `yaml:"extra_properties,omitempty" json:"extra_properties,omitempty"`
}

// CacheConfig controls result caching for repeated analyses
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// ServerConfig controls the JSON API exposed by `proofmap serve`
type ServerConfig struct {
	Addr              string  `yaml:"addr" json:"addr"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" json:"burst_size"`
	MaxBodyBytes      int64   `yaml:"max_body_bytes" json:"max_body_bytes"`
}

// LLMConfig controls the optional reading-guide summarizer
type LLMConfig struct {
	Provider        string `yaml:"provider" json:"provider"` // "openai" or "" (disabled)
	Model           string `yaml:"model" json:"model"`
	APIKey          string `yaml:"-" json:"-"` // From environment only, never persisted
	BaseURL         string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout         int    `yaml:"timeout" json:"timeout"` // Seconds
	MaxTokens       int    `yaml:"max_tokens" json:"max_tokens"`
	StrictCitations bool   `yaml:"strict_citations" json:"strict_citations"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MinStepLength:        160,
			LeapComplexityCutoff: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Server: ServerConfig{
			Addr:              ":7860",
			RequestsPerSecond: 5,
			BurstSize:         10,
			MaxBodyBytes:      1_000_000,
		},
		LLM: LLMConfig{
			Provider:        "", // Disabled by default
			Timeout:         30,
			MaxTokens:       1000,
			StrictCitations: true,
		},
	}
}
