package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ANTHROPIC_API_KEY",
		"OPENROUTER_API_KEY",
		"TANDEM_REASONER_PATH",
		"TANDEM_REASONER_MODEL",
		"TANDEM_REFINE_MODEL",
		"TANDEM_MAX_REFINE_TOKENS",
		"TANDEM_REFINE_TEMPERATURE",
		"TANDEM_REQUEST_TIMEOUT",
		"TANDEM_REASONER_TIMEOUT",
		"TANDEM_AGREEMENT_THRESHOLD",
		"TANDEM_COMPARE",
		"TANDEM_COMPARE_MODEL",
		"TANDEM_COMPARE_TEMPERATURE",
		"TANDEM_MAX_COMPARE_TOKENS",
		"TANDEM_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.ReasonerPath != DefaultReasonerPath {
		t.Errorf("ReasonerPath = %q, want %q", cfg.ReasonerPath, DefaultReasonerPath)
	}
	if cfg.RefineModel != DefaultRefineModel {
		t.Errorf("RefineModel = %q, want %q", cfg.RefineModel, DefaultRefineModel)
	}
	if cfg.MaxRefineTokens != DefaultMaxRefineTokens {
		t.Errorf("MaxRefineTokens = %d, want %d", cfg.MaxRefineTokens, DefaultMaxRefineTokens)
	}
	if cfg.RefineTemperature != DefaultRefineTemperature {
		t.Errorf("RefineTemperature = %v, want %v", cfg.RefineTemperature, DefaultRefineTemperature)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, DefaultRequestTimeout)
	}
	if cfg.ReasonerTimeout != DefaultReasonerTimeout {
		t.Errorf("ReasonerTimeout = %v, want %v", cfg.ReasonerTimeout, DefaultReasonerTimeout)
	}
	if cfg.AgreementThreshold != DefaultAgreementThreshold {
		t.Errorf("AgreementThreshold = %v, want %v", cfg.AgreementThreshold, DefaultAgreementThreshold)
	}
	if !cfg.CompareEnabled {
		t.Error("CompareEnabled should default to true")
	}
	if cfg.CompareModel != DefaultCompareModel {
		t.Errorf("CompareModel = %q, want %q", cfg.CompareModel, DefaultCompareModel)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("TANDEM_REASONER_PATH", "/opt/tandem/reasoner")
	t.Setenv("TANDEM_REFINE_MODEL", "claude-3-7-sonnet-latest")
	t.Setenv("TANDEM_MAX_REFINE_TOKENS", "4096")
	t.Setenv("TANDEM_REFINE_TEMPERATURE", "0.5")
	t.Setenv("TANDEM_REQUEST_TIMEOUT", "90")
	t.Setenv("TANDEM_AGREEMENT_THRESHOLD", "0.85")
	t.Setenv("TANDEM_COMPARE", "false")
	t.Setenv("TANDEM_DEBUG", "true")

	cfg := Load()

	if cfg.AnthropicKey != "sk-ant-test" {
		t.Errorf("AnthropicKey = %q", cfg.AnthropicKey)
	}
	if cfg.ReasonerKey != "sk-or-test" {
		t.Errorf("ReasonerKey = %q", cfg.ReasonerKey)
	}
	if cfg.ReasonerPath != "/opt/tandem/reasoner" {
		t.Errorf("ReasonerPath = %q", cfg.ReasonerPath)
	}
	if cfg.RefineModel != "claude-3-7-sonnet-latest" {
		t.Errorf("RefineModel = %q", cfg.RefineModel)
	}
	if cfg.MaxRefineTokens != 4096 {
		t.Errorf("MaxRefineTokens = %d", cfg.MaxRefineTokens)
	}
	if cfg.RefineTemperature != 0.5 {
		t.Errorf("RefineTemperature = %v", cfg.RefineTemperature)
	}
	if cfg.RequestTimeout != 90*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.AgreementThreshold != 0.85 {
		t.Errorf("AgreementThreshold = %v", cfg.AgreementThreshold)
	}
	if cfg.CompareEnabled {
		t.Error("CompareEnabled should be false")
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TANDEM_MAX_REFINE_TOKENS", "lots")
	t.Setenv("TANDEM_REFINE_TEMPERATURE", "-2")
	t.Setenv("TANDEM_REQUEST_TIMEOUT", "0")
	t.Setenv("TANDEM_COMPARE", "maybe")

	cfg := Load()

	if cfg.MaxRefineTokens != DefaultMaxRefineTokens {
		t.Errorf("MaxRefineTokens = %d, want default %d", cfg.MaxRefineTokens, DefaultMaxRefineTokens)
	}
	if cfg.RefineTemperature != DefaultRefineTemperature {
		t.Errorf("RefineTemperature = %v, want default %v", cfg.RefineTemperature, DefaultRefineTemperature)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want default %v", cfg.RequestTimeout, DefaultRequestTimeout)
	}
	if !cfg.CompareEnabled {
		t.Error("CompareEnabled should fall back to true")
	}
}
