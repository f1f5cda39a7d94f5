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

// Result counts per stage. The composition search is deliberately narrow;
// the category searches take the provider default of a full page.
const (
	compositionResultCount = 5
	categoryResultCount    = 10
)

// Reporter builds the full drug report: composition discovery, category
// context gathering, one synthesis pass, assembly.
type Reporter struct {
	deps Deps
}

// NewReporter creates a drug report orchestrator.
func NewReporter(deps Deps) *Reporter {
	return &Reporter{deps: deps}
}

// contextCategory is one section of the super-context. Queries beyond the
// first are fallback variants whose snippets are appended to the same
// section.
type contextCategory struct {
	key     string
	queries []string
}

// Run executes the four report stages for the queried medicine name.
func (r *Reporter) Run(ctx context.Context, query string) (*DrugReport, error) {
	runID := uuid.New().String()
	logging.Info("Drug report pipeline started", "run_id", runID, "query", query)

	// Stage 1: composition discovery.
	compositionResults, err := r.deps.Search.Search(ctx, fmt.Sprintf(`"%s" composition ingredients`, query), compositionResultCount)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("report", "error").Inc()
		return nil, err
	}
	if len(compositionResults) == 0 {
		metrics.PipelineRuns.WithLabelValues("report", "not_found").Inc()
		return nil, fmt.Errorf("%w: could not find any composition information for this drug via web search", ErrNotFound)
	}

	compositionReply := r.deps.Synth.SynthesizeJSON(ctx, compositionSystemPrompt,
		fmt.Sprintf("CONTEXT: %s\nUSER QUERY: %s", websearch.Snippets(compositionResults), query))
	if compositionReply.Failed() {
		metrics.PipelineRuns.WithLabelValues("report", "error").Inc()
		return nil, compositionReply.Err
	}

	composition := strings.TrimSpace(compositionReply.String("composition"))
	if composition == "" {
		metrics.PipelineRuns.WithLabelValues("report", "not_found").Inc()
		return nil, fmt.Errorf("%w: the AI could not determine the drug's composition from the search results", ErrNotFound)
	}

	genericName := strings.Fields(composition)[0]
	logging.Info("Composition identified", "run_id", runID, "composition", composition, "generic_name", genericName)

	// Stage 2: super-context. Category order is fixed; the synthesis prompt
	// refers to each section by its header.
	categories := []contextCategory{
		{key: "uses", queries: []string{fmt.Sprintf(`"%s" detailed uses and indications`, composition)}},
		{key: "side_effects", queries: []string{fmt.Sprintf(`"%s" common and rare side effects professional`, composition)}},
		{key: "warnings", queries: []string{fmt.Sprintf(`"%s" contraindications and warnings`, composition)}},
		{key: "alternatives", queries: []string{
			fmt.Sprintf(`"%s" brand names and manufacturers in india`, composition),
			fmt.Sprintf(`"%s" substitute brands same salt`, composition),
			fmt.Sprintf(`medicines equivalent to "%s"`, query),
		}},
		{key: "generic_info", queries: []string{fmt.Sprintf(`what is "%s" medicine class and mechanism of action`, genericName)}},
	}

	superContext := r.buildSuperContext(ctx, runID, categories)

	// Stage 3: single synthesis pass over the whole context.
	finalReply := r.deps.Synth.SynthesizeJSON(ctx, reportSystemPrompt,
		fmt.Sprintf("CONTEXTS:\n%s\n\nUSER QUERY: Create a full report for a drug with composition: %s", superContext, composition))
	if finalReply.Failed() {
		metrics.PipelineRuns.WithLabelValues("report", "error").Inc()
		return nil, finalReply.Err
	}

	// Stage 4: assembly. Every field the model omitted defaults to empty.
	summary := objectField(finalReply.Data, "summary")
	report := &DrugReport{
		IdentifiedMedicine: titleCase(query),
		Composition:        composition,
		GenericName:        genericName,
		ImageURL:           r.deps.Images.FindImage(ctx, query),
		GenericInfo:        stringField(finalReply.Data, "generic_info_paragraph"),
		Summary: ReportSummary{
			Uses:        stringSlice(summary, "uses"),
			SideEffects: stringSlice(summary, "side_effects"),
			Warnings:    stringSlice(summary, "warnings"),
		},
		Alternatives: parseAlternatives(finalReply.Data, 0),
	}

	logging.Info("Drug report assembled", "run_id", runID, "alternatives", len(report.Alternatives))
	metrics.PipelineRuns.WithLabelValues("report", "ok").Inc()
	return report, nil
}

// buildSuperContext runs every category query sequentially and concatenates
// the snippets under per-category headers. A failed or empty search is
// recorded inline instead of aborting the report.
func (r *Reporter) buildSuperContext(ctx context.Context, runID string, categories []contextCategory) string {
	var b strings.Builder

	for _, cat := range categories {
		b.WriteString("\n\n--- CONTEXT FOR ")
		b.WriteString(strings.ToUpper(cat.key))
		b.WriteString(" ---\n")

		found := false
		for _, q := range cat.queries {
			results, err := r.deps.Search.Search(ctx, q, categoryResultCount)
			if err != nil {
				logging.Warn("Category search failed", "run_id", runID, "category", cat.key, "error", err)
				continue
			}
			if snippets := websearch.Snippets(results); snippets != "" {
				if found {
					b.WriteString(" ")
				}
				b.WriteString(snippets)
				found = true
			}
		}

		if !found {
			b.WriteString("no information found")
		}
	}

	return b.String()
}

// parseAlternatives extracts the alternatives array, dropping entries
// without a brand name and, when minConfidence > 0, entries below it.
func parseAlternatives(data map[string]any, minConfidence float64) []BrandAlternative {
	out := []BrandAlternative{}
	for _, obj := range objectSlice(data, "alternatives") {
		alt := BrandAlternative{
			BrandName:       strings.TrimSpace(stringField(obj, "brand_name")),
			Manufacturer:    strings.TrimSpace(stringField(obj, "manufacturer")),
			Price:           strings.TrimSpace(stringField(obj, "price")),
			MatchConfidence: floatField(obj, "match_confidence"),
		}
		if alt.BrandName == "" {
			continue
		}
		if minConfidence > 0 && alt.MatchConfidence < minConfidence {
			continue
		}
		out = append(out, alt)
	}
	return out
}
