package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medinfo/medinfo-api/synthesis"
	"github.com/medinfo/medinfo-api/websearch"
)

func TestReporterRun_FullReport(t *testing.T) {
	search := &mockSearcher{
		respond: func(query string, _ int) ([]websearch.SearchResult, error) {
			switch {
			case strings.Contains(query, "composition ingredients"):
				return snippetResults("Dolo 650 contains Paracetamol 650mg"), nil
			case strings.Contains(query, "side effects"):
				return snippetResults("nausea and rash reported"), nil
			default:
				return snippetResults("general medical context"), nil
			}
		},
	}
	synth := &mockSynthesizer{
		script: []synthesis.Result{
			okResult(map[string]any{"composition": "Paracetamol 650mg"}),
			okResult(map[string]any{
				"generic_info_paragraph": "Paracetamol is an analgesic and antipyretic.",
				"summary": map[string]any{
					"uses":         []any{"Fever", "Mild pain"},
					"side_effects": []any{"Nausea"},
					"warnings":     []any{"Avoid alcohol"},
				},
				"alternatives": []any{
					map[string]any{"brand_name": "Crocin 650", "manufacturer": "GSK", "price": "Rs. 30"},
					map[string]any{"brand_name": "", "manufacturer": "nameless is dropped"},
				},
			}),
		},
	}

	report, err := NewReporter(newMockDeps(search, synth, "https://img.example.com/dolo.jpg")).Run(context.Background(), "dolo 650")

	require.NoError(t, err)
	assert.Equal(t, "Dolo 650", report.IdentifiedMedicine)
	assert.Equal(t, "Paracetamol 650mg", report.Composition)
	assert.Equal(t, "Paracetamol", report.GenericName)
	assert.Equal(t, "https://img.example.com/dolo.jpg", report.ImageURL)
	assert.Equal(t, "Paracetamol is an analgesic and antipyretic.", report.GenericInfo)
	assert.Equal(t, []string{"Fever", "Mild pain"}, report.Summary.Uses)
	assert.Equal(t, []string{"Nausea"}, report.Summary.SideEffects)
	assert.Equal(t, []string{"Avoid alcohol"}, report.Summary.Warnings)
	require.Len(t, report.Alternatives, 1)
	assert.Equal(t, "Crocin 650", report.Alternatives[0].BrandName)

	// One composition search plus seven category searches: uses,
	// side_effects, warnings, three alternatives variants, generic_info.
	assert.Len(t, search.queries, 8)
	assert.Contains(t, search.queries[0], `"dolo 650" composition ingredients`)
}

func TestReporterRun_NoCompositionResults(t *testing.T) {
	search := &mockSearcher{
		respond: func(_ string, _ int) ([]websearch.SearchResult, error) {
			return nil, nil
		},
	}
	synth := &mockSynthesizer{}

	_, err := NewReporter(newMockDeps(search, synth, "")).Run(context.Background(), "notarealdrug")

	require.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, search.queries, 1, "pipeline must stop after the composition search")
	assert.Empty(t, synth.prompts, "no synthesis without composition context")
}

func TestReporterRun_SearchErrorPropagates(t *testing.T) {
	search := &mockSearcher{
		respond: func(_ string, _ int) ([]websearch.SearchResult, error) {
			return nil, websearch.ErrNotConfigured
		},
	}

	_, err := NewReporter(newMockDeps(search, &mockSynthesizer{}, "")).Run(context.Background(), "dolo 650")

	assert.ErrorIs(t, err, websearch.ErrNotConfigured)
}

func TestReporterRun_EmptyCompositionFromModel(t *testing.T) {
	search := &mockSearcher{
		respond: func(_ string, _ int) ([]websearch.SearchResult, error) {
			return snippetResults("some context"), nil
		},
	}
	synth := &mockSynthesizer{
		script: []synthesis.Result{
			okResult(map[string]any{"composition": "   "}),
		},
	}

	_, err := NewReporter(newMockDeps(search, synth, "")).Run(context.Background(), "dolo 650")

	require.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, search.queries, 1, "category searches must not run without a composition")
}

func TestReporterRun_SynthesisFailurePropagates(t *testing.T) {
	search := &mockSearcher{
		respond: func(_ string, _ int) ([]websearch.SearchResult, error) {
			return snippetResults("some context"), nil
		},
	}
	synth := &mockSynthesizer{
		script: []synthesis.Result{
			errResult(synthesis.ErrSynthesis),
		},
	}

	_, err := NewReporter(newMockDeps(search, synth, "")).Run(context.Background(), "dolo 650")

	assert.ErrorIs(t, err, synthesis.ErrSynthesis)
}

func TestReporterRun_CategoryFailureDegradesInline(t *testing.T) {
	search := &mockSearcher{
		respond: func(query string, _ int) ([]websearch.SearchResult, error) {
			if strings.Contains(query, "contraindications") {
				return nil, websearch.ErrNetwork
			}
			if strings.Contains(query, "composition ingredients") {
				return snippetResults("Paracetamol 650mg context"), nil
			}
			return snippetResults("category context"), nil
		},
	}
	synth := &mockSynthesizer{
		script: []synthesis.Result{
			okResult(map[string]any{"composition": "Paracetamol 650mg"}),
			okResult(map[string]any{}),
		},
	}

	report, err := NewReporter(newMockDeps(search, synth, "")).Run(context.Background(), "dolo 650")

	require.NoError(t, err, "a failed category search must not abort the report")
	require.Len(t, synth.prompts, 2)

	finalPrompt := synth.prompts[1]
	assert.Contains(t, finalPrompt, "--- CONTEXT FOR WARNINGS ---\nno information found")
	assert.Contains(t, finalPrompt, "--- CONTEXT FOR USES ---\ncategory context")

	// Omitted model fields default to empty, never nil.
	assert.NotNil(t, report.Summary.Uses)
	assert.NotNil(t, report.Alternatives)
}

func TestReporterRun_AlternativesQueryVariantsShareSection(t *testing.T) {
	search := &mockSearcher{
		respond: func(query string, _ int) ([]websearch.SearchResult, error) {
			switch {
			case strings.Contains(query, "composition ingredients"):
				return snippetResults("Paracetamol 650mg"), nil
			case strings.Contains(query, "brand names"):
				return snippetResults("first variant"), nil
			case strings.Contains(query, "substitute brands"):
				return snippetResults("second variant"), nil
			case strings.Contains(query, "equivalent to"):
				return nil, nil
			default:
				return snippetResults("ctx"), nil
			}
		},
	}
	synth := &mockSynthesizer{
		script: []synthesis.Result{
			okResult(map[string]any{"composition": "Paracetamol 650mg"}),
			okResult(map[string]any{}),
		},
	}

	_, err := NewReporter(newMockDeps(search, synth, "")).Run(context.Background(), "dolo 650")

	require.NoError(t, err)
	finalPrompt := synth.prompts[1]
	assert.Contains(t, finalPrompt, "--- CONTEXT FOR ALTERNATIVES ---\nfirst variant second variant")
}

func TestParseAlternatives(t *testing.T) {
	data := map[string]any{
		"alternatives": []any{
			map[string]any{"brand_name": "Crocin", "manufacturer": "GSK", "match_confidence": 95.0},
			map[string]any{"brand_name": "Maybe", "match_confidence": 40.0},
			map[string]any{"brand_name": "", "match_confidence": 99.0},
			map[string]any{"brand_name": "Calpol", "match_confidence": 70.0},
		},
	}

	unfiltered := parseAlternatives(data, 0)
	require.Len(t, unfiltered, 3)

	filtered := parseAlternatives(data, minMatchConfidence)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Crocin", filtered[0].BrandName)
	assert.Equal(t, "Calpol", filtered[1].BrandName)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Crocin Advance", titleCase("crocin advance"))
	assert.Equal(t, "Dolo 650", titleCase("DOLO 650"))
}
