// Package pipeline sequences web searches and LLM synthesis calls into the
// three aggregation flows: drug report, price comparison and alternative
// finder. Every flow is strictly sequential; snippet ordering inside the
// grounding context is part of the contract with the synthesizer prompts.
package pipeline

import (
	"errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/medinfo/medinfo-api/interfaces"
)

// ErrNotFound marks a domain "not found" outcome: the web yielded nothing
// usable for the requested medicine.
var ErrNotFound = errors.New("not found")

// Deps are the injected collaborators shared by all orchestrators.
// Constructed once at process start, read-only thereafter.
type Deps struct {
	Search interfaces.Searcher
	Images interfaces.ImageFinder
	Synth  interfaces.Synthesizer
}

var titleCaser = cases.Title(language.English)

// titleCase normalizes user input into a display name ("crocin advance"
// becomes "Crocin Advance").
func titleCase(s string) string {
	return titleCaser.String(s)
}

// Generic-object helpers for the synthesizer's map[string]any payloads.

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func floatField(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	if f, ok := m[key].(float64); ok {
		return f
	}
	return 0
}

func boolField(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}

func objectField(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if o, ok := m[key].(map[string]any); ok {
		return o
	}
	return nil
}

// stringSlice returns the string items under key, dropping anything the
// model emitted with the wrong type. Always non-nil.
func stringSlice(m map[string]any, key string) []string {
	out := []string{}
	if m == nil {
		return out
	}
	raw, ok := m[key].([]any)
	if !ok {
		return out
	}
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// objectSlice returns the object items under key. Always non-nil.
func objectSlice(m map[string]any, key string) []map[string]any {
	out := []map[string]any{}
	if m == nil {
		return out
	}
	raw, ok := m[key].([]any)
	if !ok {
		return out
	}
	for _, item := range raw {
		if o, ok := item.(map[string]any); ok {
			out = append(out, o)
		}
	}
	return out
}
