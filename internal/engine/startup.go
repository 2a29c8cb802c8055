package engine

import (
	"context"
	"fmt"
	"io"
)

// EnsureReady checks that a local backend is reachable and that the models
// the assistant uses are present. Missing models are pulled with progress
// written to w. Duplicate and empty model names are skipped.
func EnsureReady(ctx context.Context, p Provisioner, models []string, w io.Writer) error {
	if !p.IsRunning(ctx) {
		return fmt.Errorf("local inference engine is not running; start ollama or switch llm.backend to openrouter")
	}

	seen := make(map[string]bool, len(models))
	for _, model := range models {
		if model == "" || seen[model] {
			continue
		}
		seen[model] = true

		if p.HasModel(ctx, model) {
			fmt.Fprintf(w, "model %s: ready\n", model)
			continue
		}

		fmt.Fprintf(w, "model %s: pulling...\n", model)
		err := p.PullModel(ctx, model, func(pp PullProgress) {
			if pp.Total > 0 {
				pct := float64(pp.Completed) / float64(pp.Total) * 100
				fmt.Fprintf(w, "  %s %.0f%%\n", pp.Status, pct)
			} else {
				fmt.Fprintf(w, "  %s\n", pp.Status)
			}
		})
		if err != nil {
			return fmt.Errorf("pulling model %s: %w", model, err)
		}
		fmt.Fprintf(w, "model %s: ready\n", model)
	}

	return nil
}
