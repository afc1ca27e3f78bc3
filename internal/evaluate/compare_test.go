package evaluate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/exedev/tandem/internal/config"
	"github.com/exedev/tandem/internal/llm"
)

type scriptedClient struct {
	text string
	err  error
	reqs []llm.Request
}

func (s *scriptedClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.reqs = append(s.reqs, req)
	return s.text, s.err
}

func compareConfig() *config.Config {
	return &config.Config{
		CompareModel:       "claude-3-5-haiku-20241022",
		CompareTemperature: 0.3,
		MaxCompareTokens:   1024,
		RequestTimeout:     30 * time.Second,
	}
}

func TestNarrativeReturnsCritique(t *testing.T) {
	client := &scriptedClient{text: "Both answers agree on the arithmetic."}
	c := NewComparer(client, compareConfig(), nil)

	got := c.Narrative(context.Background(), "4", "The answer is 4.")
	if got != "Both answers agree on the arithmetic." {
		t.Errorf("Narrative = %q", got)
	}

	if len(client.reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(client.reqs))
	}
	req := client.reqs[0]
	if req.Model != "claude-3-5-haiku-20241022" {
		t.Errorf("Model = %q", req.Model)
	}
	if req.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d", req.MaxTokens)
	}
	if req.Temperature != 0.3 {
		t.Errorf("Temperature = %v", req.Temperature)
	}
	for _, want := range []string{"4", "The answer is 4.", "Three key differences", "factual discrepancies"} {
		if !strings.Contains(req.Prompt, want) {
			t.Errorf("critique prompt missing %q", want)
		}
	}
}

func TestNarrativeDegradesOnFault(t *testing.T) {
	client := &scriptedClient{err: errors.New("model overloaded")}
	c := NewComparer(client, compareConfig(), nil)

	got := c.Narrative(context.Background(), "a", "b")
	if !strings.HasPrefix(got, "[Comparison unavailable:") {
		t.Errorf("Narrative = %q, want inline failure placeholder", got)
	}
	if !strings.Contains(got, "model overloaded") {
		t.Errorf("placeholder should name the fault: %q", got)
	}
}
