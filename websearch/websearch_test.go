package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(ts *httptest.Server) *Client {
	c := NewClient("test-key", "test-cx")
	c.httpClient = ts.Client()
	c.imageClient = ts.Client()
	return c
}

func withSearchServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := searchBaseURL
	searchBaseURL = ts.URL
	t.Cleanup(func() { searchBaseURL = old })

	return ts
}

func itemsPayload(n, start int) string {
	payload := `{"items":[`
	for i := 0; i < n; i++ {
		if i > 0 {
			payload += ","
		}
		payload += fmt.Sprintf(`{"title":"t%d","snippet":"s%d","link":"https://example.com/%d"}`, start+i, start+i, start+i)
	}
	return payload + `]}`
}

func TestSearch_NotConfigured(t *testing.T) {
	called := false
	withSearchServer(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
	})

	c := NewClient("", "")
	_, err := c.Search(context.Background(), "paracetamol", 5)

	require.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, called, "no network call should be made without credentials")
}

func TestSearch_SinglePage(t *testing.T) {
	ts := withSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "paracetamol uses", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("num"))
		assert.Equal(t, "1", r.URL.Query().Get("start"))
		fmt.Fprint(w, itemsPayload(5, 1))
	})

	c := newTestClient(ts)
	results, err := c.Search(context.Background(), "paracetamol uses", 5)

	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, "t1", results[0].Title)
	assert.Equal(t, "s1", results[0].Snippet)
	assert.Equal(t, "https://example.com/1", results[0].Link)
}

func TestSearch_PaginatesPastTen(t *testing.T) {
	var calls int32
	var starts []string
	ts := withSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		start := r.URL.Query().Get("start")
		starts = append(starts, start)

		num, _ := strconv.Atoi(r.URL.Query().Get("num"))
		s, _ := strconv.Atoi(start)
		fmt.Fprint(w, itemsPayload(num, s))
	})

	c := newTestClient(ts)
	results, err := c.Search(context.Background(), "ibuprofen", 25)

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"1", "11", "21"}, starts)
	assert.Len(t, results, 25)
}

func TestSearch_ClampsResultCount(t *testing.T) {
	var calls int32
	ts := withSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		num, _ := strconv.Atoi(r.URL.Query().Get("num"))
		s, _ := strconv.Atoi(r.URL.Query().Get("start"))
		fmt.Fprint(w, itemsPayload(num, s))
	})

	c := newTestClient(ts)

	// Below the floor: one request for one result.
	results, err := c.Search(context.Background(), "aspirin", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// Above the ceiling: capped at 100, so exactly 10 requests.
	atomic.StoreInt32(&calls, 0)
	results, err = c.Search(context.Background(), "aspirin", 500)
	require.NoError(t, err)
	assert.Len(t, results, 100)
	assert.Equal(t, int32(10), atomic.LoadInt32(&calls))
}

func TestSearch_PageFailureDiscardsPartials(t *testing.T) {
	var calls int32
	ts := withSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 2 {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"error":{"code":403,"message":"Daily quota exceeded"}}`)
			return
		}
		num, _ := strconv.Atoi(r.URL.Query().Get("num"))
		s, _ := strconv.Atoi(r.URL.Query().Get("start"))
		fmt.Fprint(w, itemsPayload(num, s))
	})

	c := newTestClient(ts)
	results, err := c.Search(context.Background(), "cetirizine", 25)

	require.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, err.Error(), "Daily quota exceeded")
	assert.Nil(t, results, "partial pages must be discarded on failure")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "pagination should abort after the failing page")
}

func TestSearch_ProviderErrorWithoutEnvelope(t *testing.T) {
	ts := withSearchServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "gateway timeout")
	})

	c := newTestClient(ts)
	_, err := c.Search(context.Background(), "dolo", 3)

	require.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, err.Error(), "an unknown HTTP error occurred")
}

func TestSearch_FlattensSnippetNewlines(t *testing.T) {
	ts := withSearchServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"items":[{"title":"t","snippet":"line one\nline two","link":"https://example.com"}]}`)
	})

	c := newTestClient(ts)
	results, err := c.Search(context.Background(), "dolo 650", 1)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "line one line two", results[0].Snippet)
}

func TestSnippets(t *testing.T) {
	results := []SearchResult{
		{Snippet: "first"},
		{Snippet: ""},
		{Snippet: "second"},
	}
	assert.Equal(t, "first second", Snippets(results))
	assert.Equal(t, "", Snippets(nil))
}

func TestFindImage(t *testing.T) {
	ts := withSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "image", r.URL.Query().Get("searchType"))
		assert.Contains(t, r.URL.Query().Get("q"), "tablet strip box")
		fmt.Fprint(w, `{"items":[{"title":"t","link":"https://img.example.com/dolo.jpg"}]}`)
	})

	c := newTestClient(ts)
	assert.Equal(t, "https://img.example.com/dolo.jpg", c.FindImage(context.Background(), "Dolo 650"))
}

func TestFindImage_FailuresYieldEmpty(t *testing.T) {
	ts := withSearchServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	c := newTestClient(ts)
	assert.Equal(t, "", c.FindImage(context.Background(), "Dolo 650"))

	unconfigured := NewClient("", "")
	assert.Equal(t, "", unconfigured.FindImage(context.Background(), "Dolo 650"))
}
