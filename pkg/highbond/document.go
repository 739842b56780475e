package highbond

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Document is a decoded JSON:API response body, kept exactly as the API
// returned it.
type Document map[string]any

// Data returns the primary data member: an object, a list or nil.
func (d Document) Data() any {
	if d == nil {
		return nil
	}
	return d["data"]
}

// Included returns the compound documents pulled in by include=.
func (d Document) Included() []any {
	if d == nil {
		return nil
	}
	out, _ := d["included"].([]any)
	return out
}

// Links returns the top-level links object.
func (d Document) Links() map[string]any {
	if d == nil {
		return nil
	}
	out, _ := d["links"].(map[string]any)
	return out
}

// Meta returns the top-level meta object.
func (d Document) Meta() map[string]any {
	if d == nil {
		return nil
	}
	out, _ := d["meta"].(map[string]any)
	return out
}

// NextLink returns links.next when the API reports another page.
func (d Document) NextLink() (string, bool) {
	next, ok := d.Links()["next"].(string)
	return next, ok && next != ""
}

// decodeDocument maps a 2xx body to a Document. Empty bodies and 204 yield a
// nil document; a non-JSON 202 body is surfaced under "response".
func decodeDocument(status int, body []byte) (Document, error) {
	trimmed := bytes.TrimSpace(body)
	if status == http.StatusNoContent || len(trimmed) == 0 {
		return nil, nil
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		if status == http.StatusAccepted {
			return Document{"response": string(trimmed)}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return doc, nil
}
