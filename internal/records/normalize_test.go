package records

import (
	"testing"
	"time"
)

func TestCanonicalKey(t *testing.T) {
	cases := map[string]string{
		"Customer Name":       "name",
		"Agent Name":          "agent",
		"  First Call Date  ": "first_call_date",
		"KYC Issues & Tags":   "kyc_issues_and_tags",
		"sales_amount":        "sales_amount",
		"NUMBER":              "number",
	}
	for in, want := range cases {
		if got := CanonicalKey(in); got != want {
			t.Fatalf("CanonicalKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeRowCoercesAndFillsDefaults(t *testing.T) {
	row := SourceRow{
		"Customer Name":   "  Jane Roe  ",
		"Email":           "jane@example.com",
		"Country Name":    "India",
		"First Call Date": "2024-03-05",
		"Sales Amount":    "$1,250.50",
		"Remarks":         "NaT",
		"Unknown Column":  "dropped",
	}

	out := NormalizeRow(row)

	if out.Fields["name"] != "Jane Roe" {
		t.Fatalf("name = %q", out.Fields["name"])
	}
	if out.Fields["remarks"] != "" {
		t.Fatalf("null marker should clear remarks, got %q", out.Fields["remarks"])
	}
	if out.Fields["agent"] != "" {
		t.Fatalf("missing column should default to empty, got %q", out.Fields["agent"])
	}
	if out.SalesAmount != 1250.50 {
		t.Fatalf("sales amount = %v", out.SalesAmount)
	}
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if out.Dates["first_call_date"] == nil || !out.Dates["first_call_date"].Equal(want) {
		t.Fatalf("first_call_date = %v", out.Dates["first_call_date"])
	}
	if _, ok := out.Fields["unknown_column"]; ok {
		t.Fatal("non-canonical column should be discarded")
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", out.Warnings)
	}
}

func TestNormalizeRowWarnsOnBadValues(t *testing.T) {
	row := SourceRow{
		"First Call Date": "not a date",
		"Sales Amount":    "twelve",
	}

	out := NormalizeRow(row)

	if out.Dates["first_call_date"] != nil {
		t.Fatalf("unparseable date should be nil, got %v", out.Dates["first_call_date"])
	}
	if out.SalesAmount != 0 {
		t.Fatalf("unparseable amount should be 0, got %v", out.SalesAmount)
	}
	if len(out.Warnings) != 2 {
		t.Fatalf("want 2 warnings, got %v", out.Warnings)
	}
}

func TestNormalizeRowNegativeAmountClampsToZero(t *testing.T) {
	out := NormalizeRow(SourceRow{"Sales Amount": -40.0})
	if out.SalesAmount != 0 {
		t.Fatalf("negative amount should clamp to 0, got %v", out.SalesAmount)
	}
	if len(out.Warnings) != 1 || out.Warnings[0].Field != "sales_amount" {
		t.Fatalf("want one sales_amount warning, got %v", out.Warnings)
	}
}

func TestParseDateAcceptsTimestampLayouts(t *testing.T) {
	got, ok := parseDate("2024-07-01 14:30:00")
	if !ok || got == nil {
		t.Fatalf("parseDate failed: %v %v", got, ok)
	}
	want := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("timestamp should truncate to day, got %v", got)
	}
}

func TestStringifyNumericCell(t *testing.T) {
	out := NormalizeRow(SourceRow{"Number": 447911123456.0})
	if out.Fields["number"] != "447911123456" {
		t.Fatalf("numeric cell = %q", out.Fields["number"])
	}
}
