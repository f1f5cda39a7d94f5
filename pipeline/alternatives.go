package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/medinfo/medinfo-api/logging"
	"github.com/medinfo/medinfo-api/metrics"
	"github.com/medinfo/medinfo-api/websearch"
)

// minMatchConfidence filters candidate brands the model was unsure about.
const minMatchConfidence = 70

// AlternativeFinder resolves a brand to its active ingredients and finds
// cheaper same-salt brands with price estimates.
type AlternativeFinder struct {
	deps Deps
}

// NewAlternativeFinder creates an alternative-finder orchestrator.
func NewAlternativeFinder(deps Deps) *AlternativeFinder {
	return &AlternativeFinder{deps: deps}
}

// Run executes the alternative-finder flow. The ingredient stage is a hard
// dependency of the brand search; the price and category stages degrade to
// empty fields on failure.
func (a *AlternativeFinder) Run(ctx context.Context, medicineName string) (*AlternativeReport, error) {
	runID := uuid.New().String()
	logging.Info("Alternative finder pipeline started", "run_id", runID, "medicine", medicineName)

	ingredients, err := a.findIngredients(ctx, medicineName)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("alternatives", "error").Inc()
		return nil, err
	}
	logging.Info("Active ingredients identified", "run_id", runID, "ingredients", ingredients)

	report := &AlternativeReport{
		OriginalMedicine: OriginalMedicine{
			Name:              titleCase(medicineName),
			ActiveIngredients: ingredients,
		},
		Alternatives: a.findAlternatives(ctx, runID, medicineName, ingredients),
	}

	// Best-effort stages: a miss leaves the field empty.
	report.OriginalMedicine.Price = a.findBestPrice(ctx, runID, medicineName)
	report.OriginalMedicine.Category, report.OriginalMedicine.PrimaryUse = a.findCategory(ctx, runID, medicineName)

	metrics.PipelineRuns.WithLabelValues("alternatives", "ok").Inc()
	return report, nil
}

// findIngredients is stage (a): without it the brand search has no query.
func (a *AlternativeFinder) findIngredients(ctx context.Context, medicineName string) ([]string, error) {
	results, err := a.deps.Search.Search(ctx, fmt.Sprintf(`"%s" composition active ingredients salt`, medicineName), compositionResultCount)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: could not find any composition information for this medicine via web search", ErrNotFound)
	}

	reply := a.deps.Synth.SynthesizeJSON(ctx, ingredientsSystemPrompt,
		fmt.Sprintf("CONTEXT: %s\nUSER QUERY: %s", websearch.Snippets(results), medicineName))
	if reply.Failed() {
		return nil, reply.Err
	}

	ingredients := stringSlice(reply.Data, "active_ingredients")
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("%w: the AI could not identify the active ingredients", ErrNotFound)
	}
	return ingredients, nil
}

// findAlternatives is stage (b); failure yields an empty list, not an error.
func (a *AlternativeFinder) findAlternatives(ctx context.Context, runID, medicineName string, ingredients []string) []BrandAlternative {
	salt := strings.Join(ingredients, " + ")

	var contextParts []string
	for _, q := range []string{
		fmt.Sprintf(`"%s" brand names and manufacturers in india price`, salt),
		fmt.Sprintf(`brands with same salt as "%s"`, medicineName),
	} {
		results, err := a.deps.Search.Search(ctx, q, categoryResultCount)
		if err != nil {
			logging.Warn("Alternative brand search failed", "run_id", runID, "query", q, "error", err)
			continue
		}
		if snippets := websearch.Snippets(results); snippets != "" {
			contextParts = append(contextParts, snippets)
		}
	}

	if len(contextParts) == 0 {
		return []BrandAlternative{}
	}

	reply := a.deps.Synth.SynthesizeJSON(ctx, alternativesSystemPrompt,
		fmt.Sprintf("CONTEXT: %s\nUSER QUERY: alternatives for '%s' containing: %s", strings.Join(contextParts, " "), medicineName, salt))
	if reply.Failed() {
		logging.Warn("Alternative synthesis failed", "run_id", runID, "error", reply.Err)
		return []BrandAlternative{}
	}

	return parseAlternatives(reply.Data, minMatchConfidence)
}

// findBestPrice is stage (c).
func (a *AlternativeFinder) findBestPrice(ctx context.Context, runID, medicineName string) string {
	results, err := a.deps.Search.Search(ctx, fmt.Sprintf(`buy "%s" online price`, medicineName), compositionResultCount)
	if err != nil || len(results) == 0 {
		if err != nil {
			logging.Warn("Best price search failed", "run_id", runID, "error", err)
		}
		return ""
	}

	reply := a.deps.Synth.SynthesizeJSON(ctx, bestPriceSystemPrompt,
		fmt.Sprintf("CONTEXT: %s\nUSER QUERY: %s", websearch.Snippets(results), medicineName))
	if reply.Failed() {
		return ""
	}
	return strings.TrimSpace(reply.String("price"))
}

// findCategory is stage (d).
func (a *AlternativeFinder) findCategory(ctx context.Context, runID, medicineName string) (category, primaryUse string) {
	results, err := a.deps.Search.Search(ctx, fmt.Sprintf(`what is "%s" used for therapeutic category`, medicineName), compositionResultCount)
	if err != nil || len(results) == 0 {
		if err != nil {
			logging.Warn("Category search failed", "run_id", runID, "error", err)
		}
		return "", ""
	}

	reply := a.deps.Synth.SynthesizeJSON(ctx, medicineCategorySystemPrompt,
		fmt.Sprintf("CONTEXT: %s\nUSER QUERY: %s", websearch.Snippets(results), medicineName))
	if reply.Failed() {
		return "", ""
	}
	return strings.TrimSpace(reply.String("category")), strings.TrimSpace(reply.String("primary_use"))
}
