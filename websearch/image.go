package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/medinfo/medinfo-api/logging"
)

// FindImage returns the URL of the first product-shot image result for a
// medicine, or an empty string. Image absence is never fatal: every error
// path degrades to "".
func (c *Client) FindImage(ctx context.Context, medicineName string) string {
	if c.apiKey == "" || c.cseID == "" {
		return ""
	}

	// A more specific query to get clean product shots
	params := url.Values{
		"q":          {medicineName + " tablet strip box"},
		"key":        {c.apiKey},
		"cx":         {c.cseID},
		"searchType": {"image"},
		"num":        {"1"},
		"imgSize":    {"medium"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return ""
	}

	resp, err := c.imageClient.Do(req)
	if err != nil {
		logging.Debug("Image search failed", "medicine", medicineName, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Debug("Image search HTTP error", "medicine", medicineName, "status", resp.StatusCode)
		return ""
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return ""
	}

	if len(sr.Items) == 0 {
		return ""
	}
	return sr.Items[0].Link
}
