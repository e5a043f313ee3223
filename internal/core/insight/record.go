package insight

import (
	"strconv"
	"strings"
	"time"
)

// Record is a flat, loosely typed row as delivered by the record source.
// Field values may arrive as strings even when they carry numbers or
// timestamps; Normalize coerces them before any computation.
type Record map[string]interface{}

// timeLayouts lists the accepted string timestamp formats, most specific first.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Str returns the field as a string, or "" when absent.
func (r Record) Str(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Float returns the field as a float64. String values are parsed; anything
// else yields 0.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0
}

// Time returns the field as a time.Time and whether it was present and parseable.
func (r Record) Time(key string) (time.Time, bool) {
	switch v := r[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		return parseTime(v)
	}
	return time.Time{}, false
}

// Has reports whether the field is present and non-nil.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// identifierField reports whether a field name carries an identifier rather
// than a measurable value. Identifier-looking values must never be coerced to
// numbers even when they parse as such (e.g. order numbers, product codes).
func identifierField(name string) bool {
	lower := strings.ToLower(name)
	return lower == "id" ||
		strings.HasSuffix(lower, "_id") ||
		strings.Contains(lower, "name") ||
		strings.Contains(lower, "code")
}

// dateField reports whether a field name designates a timestamp.
func dateField(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "date") ||
		strings.Contains(lower, "created_at") ||
		strings.Contains(lower, "updated_at") ||
		strings.Contains(lower, "timestamp")
}

// Normalize returns a new collection in which numeric-looking string fields
// are converted to float64 and date-like string fields are parsed into
// time.Time. The input is never mutated, and already-typed values pass
// through unchanged, so normalizing twice is a no-op. A nil or empty input
// yields an empty collection; callers treat that as insufficient data, not
// as a failure.
func Normalize(records []Record) []Record {
	if len(records) == 0 {
		return []Record{}
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		copied := make(Record, len(rec))
		for k, v := range rec {
			copied[k] = normalizeValue(k, v)
		}
		out = append(out, copied)
	}
	return out
}

func normalizeValue(name string, v interface{}) interface{} {
	s, isString := v.(string)
	if !isString {
		return v
	}

	if dateField(name) {
		if t, ok := parseTime(s); ok {
			return t
		}
		return v
	}

	if identifierField(name) {
		return v
	}

	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f
	}
	return v
}
