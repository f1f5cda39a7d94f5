package pipeline

import (
	"context"
	"strings"

	"github.com/medinfo/medinfo-api/synthesis"
	"github.com/medinfo/medinfo-api/websearch"
)

// mockSearcher records every query and answers via the respond func.
type mockSearcher struct {
	queries []string
	respond func(query string, resultCount int) ([]websearch.SearchResult, error)
}

func (m *mockSearcher) Search(_ context.Context, query string, resultCount int) ([]websearch.SearchResult, error) {
	m.queries = append(m.queries, query)
	if m.respond == nil {
		return nil, nil
	}
	return m.respond(query, resultCount)
}

// mockSynthesizer records every user prompt and answers JSON calls from an
// ordered script, one Result per call.
type mockSynthesizer struct {
	prompts   []string
	script    []synthesis.Result
	call      int
	chatReply string
	chatErr   error
}

func (m *mockSynthesizer) SynthesizeJSON(_ context.Context, _, userPrompt string) synthesis.Result {
	m.prompts = append(m.prompts, userPrompt)
	if m.call >= len(m.script) {
		return synthesis.Result{Data: map[string]any{}}
	}
	res := m.script[m.call]
	m.call++
	return res
}

func (m *mockSynthesizer) Chat(_ context.Context, _, _ string) (string, error) {
	return m.chatReply, m.chatErr
}

type mockImageFinder struct {
	url string
}

func (m *mockImageFinder) FindImage(_ context.Context, _ string) string {
	return m.url
}

func newMockDeps(search *mockSearcher, synth *mockSynthesizer, imageURL string) Deps {
	return Deps{
		Search: search,
		Images: &mockImageFinder{url: imageURL},
		Synth:  synth,
	}
}

func snippetResults(snippets ...string) []websearch.SearchResult {
	out := make([]websearch.SearchResult, 0, len(snippets))
	for i, s := range snippets {
		out = append(out, websearch.SearchResult{
			Title:   "title",
			Snippet: s,
			Link:    "https://example.com/" + strings.ReplaceAll(s, " ", "-") + string(rune('a'+i)),
		})
	}
	return out
}

func okResult(data map[string]any) synthesis.Result {
	return synthesis.Result{Data: data}
}

func errResult(err error) synthesis.Result {
	return synthesis.Result{Err: err}
}
