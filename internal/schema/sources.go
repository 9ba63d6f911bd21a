// Package schema defines the expected columns for each raw FlexiMart export.
// The column lists are the input contract: a source file whose header is
// missing any of these columns is rejected before cleaning starts.
package schema

// FieldType represents the expected data type for a CSV column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldDate
	FieldNumeric
)

// FieldSpec describes a single expected CSV column.
type FieldSpec struct {
	Name     string    // Column header name (case-insensitive match)
	Type     FieldType // Expected data type
	Required bool      // Column must exist in the CSV header
}

// CustomerFieldSpecs defines the expected columns of customers_raw.csv.
var CustomerFieldSpecs = []FieldSpec{
	{Name: "customer_id", Type: FieldText, Required: true},
	{Name: "first_name", Type: FieldText, Required: true},
	{Name: "last_name", Type: FieldText, Required: true},
	{Name: "email", Type: FieldText, Required: true},
	{Name: "phone", Type: FieldText, Required: true},
	{Name: "city", Type: FieldText, Required: true},
	{Name: "registration_date", Type: FieldDate, Required: true},
}

// ProductFieldSpecs defines the expected columns of products_raw.csv.
var ProductFieldSpecs = []FieldSpec{
	{Name: "product_id", Type: FieldText, Required: true},
	{Name: "product_name", Type: FieldText, Required: true},
	{Name: "category", Type: FieldText, Required: true},
	{Name: "price", Type: FieldNumeric, Required: true},
	{Name: "stock_quantity", Type: FieldNumeric, Required: true},
}

// SalesFieldSpecs defines the expected columns of sales_raw.csv.
var SalesFieldSpecs = []FieldSpec{
	{Name: "transaction_id", Type: FieldText, Required: true},
	{Name: "customer_id", Type: FieldText, Required: true},
	{Name: "product_id", Type: FieldText, Required: true},
	{Name: "quantity", Type: FieldNumeric, Required: true},
	{Name: "unit_price", Type: FieldNumeric, Required: true},
	{Name: "transaction_date", Type: FieldDate, Required: true},
	{Name: "status", Type: FieldText, Required: true},
}

// Columns returns the column names of a spec list, in declaration order.
func Columns(specs []FieldSpec) []string {
	cols := make([]string, len(specs))
	for i, spec := range specs {
		cols[i] = spec.Name
	}
	return cols
}
