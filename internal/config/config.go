// Package config assembles the pipeline configuration from the process
// environment. A .env file in the working directory is honored when present,
// with real environment variables taking precedence.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when a variable is unset or unparsable.
const (
	DefaultReasonerPath       = "bin/tandem-reasoner"
	DefaultReasonerModel      = "deepseek/deepseek-r1"
	DefaultRefineModel        = "claude-3-5-sonnet-20241022"
	DefaultCompareModel       = "claude-3-5-haiku-20241022"
	DefaultMaxRefineTokens    = 8000
	DefaultMaxCompareTokens   = 1024
	DefaultRefineTemperature  = 1.0
	DefaultCompareTemperature = 0.3
	DefaultRequestTimeout     = 30 * time.Second
	DefaultReasonerTimeout    = 120 * time.Second
	DefaultAgreementThreshold = 0.7
)

// Config holds every tunable for one session. It is built once at startup
// and treated as read-only afterwards.
type Config struct {
	// Credentials. AnthropicKey gates the refinement and comparison calls;
	// ReasonerKey is handed to the stage-1 child process through its
	// environment.
	AnthropicKey string
	ReasonerKey  string

	// ReasonerPath is the stage-1 integration artifact. ReasonerModel is
	// forwarded to it.
	ReasonerPath  string
	ReasonerModel string

	RefineModel       string
	MaxRefineTokens   int
	RefineTemperature float64

	// RequestTimeout bounds the refinement and comparison calls.
	// ReasonerTimeout bounds the stage-1 child process, which streams a
	// full reasoning trace and needs far more headroom.
	RequestTimeout  time.Duration
	ReasonerTimeout time.Duration

	// AgreementThreshold is the exclusive lower bound the lexical ratio
	// must clear for the agreement verdict.
	AgreementThreshold float64

	CompareEnabled     bool
	CompareModel       string
	CompareTemperature float64
	MaxCompareTokens   int

	Debug bool
}

// Load reads an optional .env file, then resolves every setting from the
// environment. Malformed values fall back to their defaults rather than
// failing startup.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		ReasonerKey:  os.Getenv("OPENROUTER_API_KEY"),

		ReasonerPath:  getString("TANDEM_REASONER_PATH", DefaultReasonerPath),
		ReasonerModel: getString("TANDEM_REASONER_MODEL", DefaultReasonerModel),

		RefineModel:       getString("TANDEM_REFINE_MODEL", DefaultRefineModel),
		MaxRefineTokens:   getInt("TANDEM_MAX_REFINE_TOKENS", DefaultMaxRefineTokens),
		RefineTemperature: getFloat("TANDEM_REFINE_TEMPERATURE", DefaultRefineTemperature),

		RequestTimeout:  getSeconds("TANDEM_REQUEST_TIMEOUT", DefaultRequestTimeout),
		ReasonerTimeout: getSeconds("TANDEM_REASONER_TIMEOUT", DefaultReasonerTimeout),

		AgreementThreshold: getFloat("TANDEM_AGREEMENT_THRESHOLD", DefaultAgreementThreshold),

		CompareEnabled:     getBool("TANDEM_COMPARE", true),
		CompareModel:       getString("TANDEM_COMPARE_MODEL", DefaultCompareModel),
		CompareTemperature: getFloat("TANDEM_COMPARE_TEMPERATURE", DefaultCompareTemperature),
		MaxCompareTokens:   getInt("TANDEM_MAX_COMPARE_TOKENS", DefaultMaxCompareTokens),

		Debug: getBool("TANDEM_DEBUG", false),
	}
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getSeconds reads a duration expressed as a whole number of seconds.
func getSeconds(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
