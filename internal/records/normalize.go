package records

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Canonical column sets. Any source column outside these is discarded; any
// canonical column missing from the source is filled with the field default
// (strings -> "", dates -> nil, sales_amount -> 0).
var (
	canonicalStringColumns = []string{
		"name", "email", "number", "country_name", "remarks", "agent",
		"status", "notes_from_call", "post_call_email", "tags",
		"interested_category", "sales_status", "next_follow_up_time",
	}
	canonicalDateColumns = []string{
		"first_call_date", "next_follow_up_date", "calling_stamp", "signup_date",
	}
)

// Legacy source column names mapped onto canonical ones.
var columnAliases = map[string]string{
	"customer_name": "name",
	"agent_name":    "agent",
}

// Source markers that mean "no value" for text fields.
var nullMarkers = map[string]struct{}{
	"nat": {}, "nan": {}, "none": {}, "null": {}, "n/a": {},
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// NormalizedRow is a source row after key canonicalization and type
// coercion, restricted to the canonical column set.
type NormalizedRow struct {
	Fields      map[string]string
	Dates       map[string]*time.Time
	SalesAmount float64
	Warnings    []Warning
}

// CanonicalKey converts an arbitrary source column name to its canonical
// form: lowercased, trimmed, spaces to underscores, "&" to "and", plus the
// legacy alias table.
func CanonicalKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, " ", "_")
	k = strings.ReplaceAll(k, "&", "and")
	if alias, ok := columnAliases[k]; ok {
		return alias
	}
	return k
}

// NormalizeRow canonicalizes keys and coerces values for one source row.
// It is total: malformed values degrade to the field default and show up as
// warnings, never as errors.
func NormalizeRow(row SourceRow) NormalizedRow {
	keyed := make(map[string]any, len(row))
	for key, value := range row {
		keyed[CanonicalKey(key)] = value
	}

	out := NormalizedRow{
		Fields: make(map[string]string, len(canonicalStringColumns)),
		Dates:  make(map[string]*time.Time, len(canonicalDateColumns)),
	}

	for _, col := range canonicalStringColumns {
		out.Fields[col] = cleanText(keyed[col])
	}

	for _, col := range canonicalDateColumns {
		raw := cleanText(keyed[col])
		parsed, ok := parseDate(raw)
		if raw != "" && !ok {
			out.Warnings = append(out.Warnings, Warning{Field: col, Value: raw, Reason: "unparseable date"})
		}
		out.Dates[col] = parsed
	}

	amount, warn := parseCurrency(keyed["sales_amount"])
	if warn != nil {
		out.Warnings = append(out.Warnings, *warn)
	}
	out.SalesAmount = amount

	return out
}

// cleanText coerces a loosely typed cell to a trimmed string, mapping null
// markers from the source to the empty string.
func cleanText(value any) string {
	text := strings.TrimSpace(stringify(value))
	if _, isNull := nullMarkers[strings.ToLower(text)]; isNull {
		return ""
	}
	return text
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	case time.Time:
		return typed.Format("2006-01-02")
	default:
		return ""
	}
}

// parseDate tries the known layouts against a cleaned cell. ok is false only
// for non-empty input that matched no layout; empty input is a nil date with
// ok true.
func parseDate(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &day, true
		}
	}
	return nil, false
}

// parseCurrency coerces a sales amount cell to a finite non-negative float.
// Currency symbols and thousands separators are stripped; anything that
// still fails to parse, or parses negative or non-finite, coerces to 0.
func parseCurrency(value any) (float64, *Warning) {
	if number, ok := value.(float64); ok {
		return clampAmount(number, stringify(value))
	}

	raw := cleanText(value)
	if raw == "" {
		return 0, nil
	}

	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	number, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &Warning{Field: "sales_amount", Value: raw, Reason: "unparseable amount"}
	}
	return clampAmount(number, raw)
}

func clampAmount(number float64, raw string) (float64, *Warning) {
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, &Warning{Field: "sales_amount", Value: raw, Reason: "non-finite amount"}
	}
	if number < 0 {
		return 0, &Warning{Field: "sales_amount", Value: raw, Reason: "negative amount"}
	}
	return number, nil
}
