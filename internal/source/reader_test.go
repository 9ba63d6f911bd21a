package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fleximart/etl/internal/schema"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv"), schema.CustomerFieldSpecs)
	if !errors.Is(err, ErrMissing) {
		t.Errorf("err = %v, want ErrMissing", err)
	}
}

func TestReadTableMissingRequiredColumn(t *testing.T) {
	path := writeTempCSV(t, "customers_raw.csv", "customer_id,first_name\nC001,Asha\n")
	_, err := ReadTable(path, schema.CustomerFieldSpecs)
	if err == nil {
		t.Fatal("want an error for a header without the email column")
	}
}

func TestReadTableSkipsBOMAndEmptyRows(t *testing.T) {
	content := "\xEF\xBB\xBFcustomer_id,first_name,last_name,email,phone,city,registration_date\n" +
		"C001,Asha,Patel,asha@example.com,,,\n" +
		",,,,,,\n" +
		"C002,Ravi,Kumar,ravi@example.com,,,\n"
	path := writeTempCSV(t, "customers_raw.csv", content)

	tbl, err := ReadTable(path, schema.CustomerFieldSpecs)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Name != "customers_raw.csv" {
		t.Errorf("name = %q", tbl.Name)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d, want 2 (blank row skipped)", tbl.Len())
	}
	// The BOM must not pollute the first column's name.
	if got := tbl.Cell(tbl.Rows[0], "customer_id"); got != "C001" {
		t.Errorf("customer_id = %q, want C001", got)
	}
}

func TestReadTableHeaderCaseInsensitive(t *testing.T) {
	content := "Customer_ID,First_Name,Last_Name,Email,Phone,City,Registration_Date\n" +
		"C001,Asha,Patel,asha@example.com,,,\n"
	path := writeTempCSV(t, "customers_raw.csv", content)

	tbl, err := ReadTable(path, schema.CustomerFieldSpecs)
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Cell(tbl.Rows[0], "email"); got != "asha@example.com" {
		t.Errorf("email = %q", got)
	}
}

func TestReadTableRaggedRows(t *testing.T) {
	content := "product_id,product_name,category,price,stock_quantity\n" +
		"P100,Laptop Pro,Electronics\n" + // short row
		"P200,Desk Lamp,Home,19.99,5,extra\n" // long row
	path := writeTempCSV(t, "products_raw.csv", content)

	tbl, err := ReadTable(path, schema.ProductFieldSpecs)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d, want 2", tbl.Len())
	}
	if got := tbl.Cell(tbl.Rows[0], "price"); got != "" {
		t.Errorf("short row price = %q, want empty", got)
	}
	if got := tbl.Cell(tbl.Rows[1], "price"); got != "19.99" {
		t.Errorf("long row price = %q, want 19.99", got)
	}
}

func TestCellUnknownColumn(t *testing.T) {
	tbl := NewTable("t.csv", []string{"a"}, [][]string{{"1"}})
	if got := tbl.Cell(tbl.Rows[0], "missing"); got != "" {
		t.Errorf("unknown column = %q, want empty", got)
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain  ", "plain"},
		{`="C001"`, "C001"},
		{"=42", "42"},
		{`"quoted"`, "quoted"},
		{"'single'", "single"},
		{`" padded "`, "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanCell(tt.in); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
