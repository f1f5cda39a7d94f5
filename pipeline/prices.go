package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/medinfo/medinfo-api/logging"
	"github.com/medinfo/medinfo-api/metrics"
	"github.com/medinfo/medinfo-api/websearch"
)

const priceResultCount = 10

// PriceComparer gathers storefront listings for a medicine and normalizes
// them into a ranked comparison.
type PriceComparer struct {
	deps Deps
}

// NewPriceComparer creates a price comparison orchestrator.
func NewPriceComparer(deps Deps) *PriceComparer {
	return &PriceComparer{deps: deps}
}

// Run executes the price comparison flow for the medicine name.
func (p *PriceComparer) Run(ctx context.Context, medicineName string) (*PriceComparison, error) {
	runID := uuid.New().String()
	logging.Info("Price comparison pipeline started", "run_id", runID, "medicine", medicineName)

	queries := []string{
		fmt.Sprintf(`buy "%s" online price`, medicineName),
		fmt.Sprintf(`"%s" tablet price online pharmacy india`, medicineName),
		fmt.Sprintf(`"%s" price per strip discount`, medicineName),
	}

	merged, firstErr := p.mergedSearch(ctx, runID, queries)
	if len(merged) == 0 {
		if firstErr != nil {
			metrics.PipelineRuns.WithLabelValues("prices", "error").Inc()
			return nil, firstErr
		}
		metrics.PipelineRuns.WithLabelValues("prices", "ok").Inc()
		return &PriceComparison{MedicineName: medicineName, Prices: []PriceListing{}}, nil
	}

	// Separate informational query; its failure never blocks the listings.
	var infoContext string
	infoResults, err := p.deps.Search.Search(ctx, fmt.Sprintf(`what is "%s" composition manufacturer uses`, medicineName), compositionResultCount)
	if err != nil {
		logging.Warn("Informational search failed", "run_id", runID, "error", err)
	} else {
		infoContext = websearch.Snippets(infoResults)
	}

	serialized, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("prices", "error").Inc()
		return nil, fmt.Errorf("serializing search results: %w", err)
	}

	userPrompt := fmt.Sprintf("Extract price information for '%s' from the following search results:\n\n%s", medicineName, serialized)
	if infoContext != "" {
		userPrompt += "\n\nINFORMATIONAL CONTEXT:\n" + infoContext
	}

	reply := p.deps.Synth.SynthesizeJSON(ctx, priceSystemPrompt, userPrompt)
	if reply.Failed() {
		metrics.PipelineRuns.WithLabelValues("prices", "error").Inc()
		return nil, reply.Err
	}

	listings := parseListings(reply.Data)
	rankListings(listings)

	comparison := &PriceComparison{
		MedicineName: medicineName,
		Prices:       listings,
		MedicineInfo: parseMedicineInfo(reply.Data),
		ImageURL:     p.deps.Images.FindImage(ctx, medicineName),
	}

	logging.Info("Price comparison assembled", "run_id", runID, "listings", len(listings))
	metrics.PipelineRuns.WithLabelValues("prices", "ok").Inc()
	return comparison, nil
}

// mergedSearch runs the queries in order and merges their results,
// deduplicating by link. Individual query failures are tolerated; the
// first error is kept for the all-failed case.
func (p *PriceComparer) mergedSearch(ctx context.Context, runID string, queries []string) ([]websearch.SearchResult, error) {
	var merged []websearch.SearchResult
	var firstErr error
	seen := make(map[string]bool)

	for _, q := range queries {
		results, err := p.deps.Search.Search(ctx, q, priceResultCount)
		if err != nil {
			logging.Warn("Price search failed", "run_id", runID, "query", q, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, r := range results {
			if r.Link != "" && seen[r.Link] {
				continue
			}
			seen[r.Link] = true
			merged = append(merged, r)
		}
	}

	return merged, firstErr
}

func parseListings(data map[string]any) []PriceListing {
	out := []PriceListing{}
	for _, obj := range objectSlice(data, "prices") {
		l := PriceListing{
			Store:        strings.TrimSpace(stringField(obj, "store")),
			Price:        strings.TrimSpace(stringField(obj, "price")),
			Quantity:     strings.TrimSpace(stringField(obj, "quantity")),
			URL:          strings.TrimSpace(stringField(obj, "url")),
			Discount:     strings.TrimSpace(stringField(obj, "discount")),
			DeliveryInfo: strings.TrimSpace(stringField(obj, "delivery_info")),
			BestDeal:     boolField(obj, "best_deal"),
		}
		if l.Store == "" && l.Price == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

func parseMedicineInfo(data map[string]any) *MedicineInfo {
	obj := objectField(data, "medicine_info")
	if obj == nil {
		return nil
	}
	info := &MedicineInfo{
		Composition:  strings.TrimSpace(stringField(obj, "composition")),
		Manufacturer: strings.TrimSpace(stringField(obj, "manufacturer")),
		Description:  strings.TrimSpace(stringField(obj, "description")),
	}
	if *info == (MedicineInfo{}) {
		return nil
	}
	return info
}

// rankListings orders and scores listings in place: a stable sort by
// (best_deal first, then price string lexically), numeric price
// extraction, then savings between the numeric extremes attached only to
// the cheapest listing. The best-deal flag is re-derived from the numeric
// minimum so at most one listing carries it.
func rankListings(listings []PriceListing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].BestDeal != listings[j].BestDeal {
			return listings[i].BestDeal
		}
		return listings[i].Price < listings[j].Price
	})

	minIdx := -1
	maxPrice := 0.0
	for i := range listings {
		n, ok := extractNumericPrice(listings[i].Price)
		if !ok {
			continue
		}
		listings[i].NumericPrice = n
		if minIdx == -1 || n < listings[minIdx].NumericPrice {
			minIdx = i
		}
		if n > maxPrice {
			maxPrice = n
		}
	}

	if minIdx == -1 {
		return
	}

	for i := range listings {
		listings[i].BestDeal = i == minIdx
		listings[i].SavingsPercent = 0
	}

	if maxPrice > listings[minIdx].NumericPrice {
		listings[minIdx].SavingsPercent = math.Round((maxPrice - listings[minIdx].NumericPrice) / maxPrice * 100)
	}
}

var priceNumberPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// extractNumericPrice parses the first number in a display price, skipping
// currency prefixes like "Rs." and trailing pack-size text.
// Non-authoritative; used for ranking and savings.
func extractNumericPrice(price string) (float64, bool) {
	m := priceNumberPattern.FindString(price)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
