package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertCustomerSQL = `
	INSERT INTO customers (first_name, last_name, email, phone, city, registration_date)
	VALUES ($1, $2, $3, $4, $5, $6)
`

// InsertCustomerParams holds the column values for one customer row.
type InsertCustomerParams struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            pgtype.Text
	City             pgtype.Text
	RegistrationDate pgtype.Date
}

// InsertCustomer inserts one customer row; the surrogate key is auto-assigned.
func (q *Queries) InsertCustomer(ctx context.Context, params InsertCustomerParams) error {
	_, err := q.db.Exec(ctx, insertCustomerSQL,
		params.FirstName, params.LastName, params.Email,
		params.Phone, params.City, params.RegistrationDate)
	return err
}

const insertProductSQL = `
	INSERT INTO products (product_name, category, price, stock_quantity)
	VALUES ($1, $2, $3, $4)
`

// InsertProductParams holds the column values for one product row.
type InsertProductParams struct {
	ProductName   string
	Category      string
	Price         float64
	StockQuantity int
}

// InsertProduct inserts one product row; the surrogate key is auto-assigned.
func (q *Queries) InsertProduct(ctx context.Context, params InsertProductParams) error {
	_, err := q.db.Exec(ctx, insertProductSQL,
		params.ProductName, params.Category, params.Price, params.StockQuantity)
	return err
}

const insertOrderSQL = `
	INSERT INTO orders (customer_id, order_date, total_amount, status)
	VALUES ($1, $2, $3, $4)
	RETURNING order_id
`

// InsertOrderParams holds the column values for one order row.
type InsertOrderParams struct {
	CustomerID  int32
	OrderDate   pgtype.Date
	TotalAmount float64
	Status      string
}

// InsertOrder inserts one order row and returns its surrogate key.
func (q *Queries) InsertOrder(ctx context.Context, params InsertOrderParams) (int32, error) {
	var orderID int32
	err := q.db.QueryRow(ctx, insertOrderSQL,
		params.CustomerID, params.OrderDate, params.TotalAmount, params.Status).Scan(&orderID)
	return orderID, err
}

const insertOrderItemSQL = `
	INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
	VALUES ($1, $2, $3, $4, $5)
`

// InsertOrderItemParams holds the column values for one order item row.
type InsertOrderItemParams struct {
	OrderID   int32
	ProductID int32
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

// InsertOrderItem inserts one order item row.
func (q *Queries) InsertOrderItem(ctx context.Context, params InsertOrderItemParams) error {
	_, err := q.db.Exec(ctx, insertOrderItemSQL,
		params.OrderID, params.ProductID, params.Quantity, params.UnitPrice, params.Subtotal)
	return err
}

const listCustomerKeysSQL = `SELECT customer_id, email FROM customers`

// ListCustomerKeys returns the email -> surrogate key mapping for all
// persisted customers.
func (q *Queries) ListCustomerKeys(ctx context.Context) (map[string]int32, error) {
	rows, err := q.db.Query(ctx, listCustomerKeysSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]int32)
	for rows.Next() {
		var id int32
		var email string
		if err := rows.Scan(&id, &email); err != nil {
			return nil, err
		}
		keys[email] = id
	}
	return keys, rows.Err()
}

const listProductKeysSQL = `SELECT product_id, product_name FROM products`

// ListProductKeys returns the product name -> surrogate key mapping for all
// persisted products.
func (q *Queries) ListProductKeys(ctx context.Context) (map[string]int32, error) {
	rows, err := q.db.Query(ctx, listProductKeysSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]int32)
	for rows.Next() {
		var id int32
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		keys[name] = id
	}
	return keys, rows.Err()
}
