package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"salesdash_backend/internal/records"
)

func TestRowsFromCells(t *testing.T) {
	header := []string{"Customer Name", "Email", "", "Sales Amount"}
	data := [][]string{
		{"Jane", "jane@example.com", "ignored", "100"},
		{"Bob"}, // short row padded
	}

	rows := rowsFromCells(header, data)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0]["Customer Name"] != "Jane" || rows[0]["Sales Amount"] != "100" {
		t.Fatalf("row 0 = %v", rows[0])
	}
	if _, ok := rows[0][""]; ok {
		t.Fatal("empty header column should be dropped")
	}
	if rows[1]["Email"] != "" {
		t.Fatalf("short row should pad, got %v", rows[1])
	}
}

func TestRowsFromCellsKeepsRawNumericCells(t *testing.T) {
	header := []string{"Number", "Sales Amount"}
	data := [][]any{{4.47911123456e11, 100.5}}

	rows := rowsFromCells(header, data)
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	if got, ok := rows[0]["Number"].(float64); !ok || got != 4.47911123456e11 {
		t.Fatalf("numeric cell should pass through untouched, got %v", rows[0]["Number"])
	}

	// A phone number column delivered as a number must not pick up
	// exponent notation on its way to the canonical record.
	normalized := records.NormalizeRow(rows[0])
	if normalized.Fields["number"] != "447911123456" {
		t.Fatalf("number = %q", normalized.Fields["number"])
	}
	if normalized.SalesAmount != 100.5 {
		t.Fatalf("sales amount = %v", normalized.SalesAmount)
	}
}

func TestHeaderText(t *testing.T) {
	if headerText("Email") != "Email" {
		t.Fatal("string header should pass through")
	}
	if headerText(nil) != "" {
		t.Fatal("nil header cell should be empty")
	}
	if got := headerText(2024.0); got != "2024" {
		t.Fatalf("numeric header = %q", got)
	}
}

func TestCSVSourceFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	content := "Customer Name,Email,Sales Amount\nJane,jane@example.com,100\nBob,bob@example.com,\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rows, err := NewCSVSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[1]["Customer Name"] != "Bob" || rows[1]["Sales Amount"] != "" {
		t.Fatalf("row 1 = %v", rows[1])
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv")).Fetch(context.Background())
	if err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	if _, err := New(staticSourceConfig{kind: "ftp"}); err == nil {
		t.Fatal("want error for unsupported kind")
	}
	if _, err := New(staticSourceConfig{kind: "csv"}); err != nil {
		t.Fatalf("csv kind: %v", err)
	}
}

type staticSourceConfig struct{ kind string }

func (c staticSourceConfig) GetSourceKind() string            { return c.kind }
func (c staticSourceConfig) GetSheetsCredentialsFile() string { return "" }
func (c staticSourceConfig) GetSpreadsheetID() string         { return "" }
func (c staticSourceConfig) GetWorksheetName() string         { return "Sheet1" }
func (c staticSourceConfig) GetSourceFile() string            { return "leads.csv" }
