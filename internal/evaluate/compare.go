package evaluate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/exedev/tandem/internal/config"
	"github.com/exedev/tandem/internal/llm"
)

const critiqueTemplate = `Compare these two answers:

Answer 1 (reasoning stage):
%s

Answer 2 (refinement stage):
%s

Please analyze:
1. Three key differences between the answers
2. One notable strength of each answer
3. Any factual discrepancies between them
4. Which answer is more comprehensive and why
5. Concrete suggestions to improve the weaker answer`

// Comparer produces a free-text critique of the two answers using the
// comparison model. It never returns an error: any fault degrades to an
// inline placeholder narrative so callers always have displayable text.
type Comparer struct {
	client llm.Client
	cfg    *config.Config
	logger *zap.Logger
}

func NewComparer(client llm.Client, cfg *config.Config, logger *zap.Logger) *Comparer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparer{client: client, cfg: cfg, logger: logger}
}

// Narrative runs the five-point critique prompt against the comparison
// model, bounded by the configured request timeout.
func (c *Comparer) Narrative(ctx context.Context, first, second string) string {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	text, err := c.client.Complete(ctx, llm.Request{
		Model:       c.cfg.CompareModel,
		MaxTokens:   c.cfg.MaxCompareTokens,
		Temperature: c.cfg.CompareTemperature,
		Prompt:      fmt.Sprintf(critiqueTemplate, first, second),
	})
	if err != nil {
		c.logger.Warn("comparison failed", zap.Error(err))
		return fmt.Sprintf("[Comparison unavailable: %v]", err)
	}
	return text
}
