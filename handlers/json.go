// Package handlers provides HTTP request handlers for the medinfo API
// endpoints: the aggregation pipelines, the kendra finder, the assistant
// and the relational features, with input validation and error mapping.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/medinfo/medinfo-api/logging"
)

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response. The message is sanitized
// so provider errors can never leak markup into the JSON error field.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": sanitizeMessage(msg)})
}

// sanitizeMessage strips HTML-looking fragments from a message. Some
// providers answer error statuses with full HTML pages.
func sanitizeMessage(msg string) string {
	if !strings.ContainsAny(msg, "<>") {
		return msg
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(msg))
	if err != nil {
		return "An unexpected server error occurred."
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if text == "" {
		return "An unexpected server error occurred."
	}
	return text
}

// decodeJSONBody decodes a request body into dst, rejecting unparsable
// payloads uniformly.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid JSON request body.")
		return false
	}
	return true
}
