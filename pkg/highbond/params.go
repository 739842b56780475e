package highbond

import (
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 100
)

// Page selects one page of a list endpoint. Zero values mean page 1 of
// DefaultPageSize.
type Page struct {
	Number int
	Size   int
}

func (p Page) validate() error {
	if p.Number < 0 {
		return invalid("page number", "must be >= 1, got %d", p.Number)
	}
	if p.Size < 0 || p.Size > MaxPageSize {
		return invalid("page size", "must be between 1 and %d, got %d", MaxPageSize, p.Size)
	}
	return nil
}

func (p Page) number() int {
	if p.Number <= 0 {
		return 1
	}
	return p.Number
}

func (p Page) size() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

// apply writes page[size] and the base64 page cursor HighBond expects.
func (p Page) apply(q url.Values) {
	q.Set("page[size]", strconv.Itoa(p.size()))
	q.Set("page[number]", EncodePageNumber(p.number()))
}

// applyPlain writes page[number] as a bare integer (robot jobs).
func (p Page) applyPlain(q url.Values) {
	q.Set("page[size]", strconv.Itoa(p.size()))
	q.Set("page[number]", strconv.Itoa(p.number()))
}

// EncodePageNumber renders n as the base64 page cursor used by the API.
func EncodePageNumber(n int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(n)))
}

// DecodePageNumber reverses EncodePageNumber.
func DecodePageNumber(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(cursor))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(raw))
}

// query helpers; empty values are omitted from the request.

func setString(q url.Values, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		q.Set(key, v)
	}
}

func setList(q url.Values, key string, values []string) {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) > 0 {
		q.Set(key, strings.Join(parts, ","))
	}
}

func setFields(q url.Values, resourceType string, fields []string) {
	setList(q, "fields["+resourceType+"]", fields)
}

func setBool(q url.Values, key string, value *bool) {
	if value != nil {
		q.Set(key, strconv.FormatBool(*value))
	}
}

// Bool returns a pointer to b, for optional boolean filters.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n, for optional numeric attributes.
func Int(n int) *int { return &n }

// path helpers

func pathEscape(s string) string { return url.PathEscape(strings.TrimSpace(s)) }

// joinPath escapes every segment and joins them with "/".
func joinPath(segments ...string) string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = pathEscape(s)
	}
	return strings.Join(out, "/")
}

// validators

func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	return nil
}

func requireIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := requireID(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return invalid(field, "%q is not one of %s", value, strings.Join(allowed, ", "))
}

func subsetOf(field string, values []string, allowed ...string) error {
	for _, v := range values {
		if err := oneOf(field, v, allowed...); err != nil {
			return err
		}
	}
	return nil
}

// sortOneOf accepts a field name optionally prefixed with "-" for descending.
func sortOneOf(value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	return oneOf("sort", strings.TrimPrefix(value, "-"), allowed...)
}

const dateLayout = "2006-01-02"

func validDate(field, value string, required bool) error {
	if value == "" {
		if required {
			return invalid(field, "is required")
		}
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return invalid(field, "must be a YYYY-MM-DD date, got %q", value)
	}
	return nil
}
