// Package core implements the transform-and-reconcile pipeline: the
// normalization rules, conflict-resolution policies, and raw-identifier
// reconciliation that turn three dirty CSV exports into referentially
// consistent relational rows.
//
// This package has no I/O of its own. Files come in through the source
// package, rows go out through the Store interface, and the report package
// renders the quality counts; everything in between is deterministic and
// testable without a database.
package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Customer is a cleaned customer row, ready for insertion.
// Email is present and unique within a cleaned set; the surrogate key is
// assigned by the storage layer at insert time.
type Customer struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            pgtype.Text // canonical +91-XXXXXXXXXX, or absent
	City             pgtype.Text // title-cased, or absent
	RegistrationDate pgtype.Date
}

// Product is a cleaned product row. Price is always present: rows whose
// price could not be recovered are dropped by the cleaner, never nulled.
type Product struct {
	Name          string
	Category      string
	Price         float64
	StockQuantity int
}

// Sale is a cleaned sales transaction. It still carries the raw customer and
// product references from the export; those are resolved to surrogate keys
// only after customers and products have been persisted.
type Sale struct {
	TransactionID  string
	RawCustomerRef string
	RawProductRef  string
	OrderDate      time.Time
	Status         string
	Quantity       int
	UnitPrice      float64
	Subtotal       float64
	TotalAmount    float64
}

// Order is one order row, 1:1 with a surviving sale.
type Order struct {
	CustomerID  int32 // surrogate key
	OrderDate   time.Time
	TotalAmount float64
	Status      string
}

// OrderItem is the single line item of an order.
type OrderItem struct {
	ProductID int32 // surrogate key
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

// OrderWithItem pairs an order with its line item so the storage layer can
// insert both inside one transaction, wiring the order's surrogate key into
// the item.
type OrderWithItem struct {
	Order Order
	Item  OrderItem
}

// Store is the storage collaborator. All inserts auto-assign surrogate keys;
// email uniqueness is guaranteed upstream by the customer cleaner, not by
// catching constraint errors here.
type Store interface {
	EnsureSchema(ctx context.Context) error
	// TruncateAll resets the target tables in dependency order
	// (order_items, orders, products, customers).
	TruncateAll(ctx context.Context) error
	InsertCustomers(ctx context.Context, customers []Customer) (int, error)
	InsertProducts(ctx context.Context, products []Product) (int, error)
	CustomerKeysByEmail(ctx context.Context) (map[string]int32, error)
	ProductKeysByName(ctx context.Context) (map[string]int32, error)
	InsertOrders(ctx context.Context, orders []OrderWithItem) (int, error)
}
