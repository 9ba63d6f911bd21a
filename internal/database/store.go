package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleximart/etl/internal/config"
	"github.com/fleximart/etl/internal/core"
)

// Store implements core.Store on a pgx connection pool. Every Insert* call
// wraps one entity stream in a single transaction, so a mid-stream failure
// rolls the whole stream back and the tables never end up half-loaded
// relative to the quality report.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool from config and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.DatabaseConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the target tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// TruncateAll resets all four tables in dependency order, making the run
// repeatable.
func (s *Store) TruncateAll(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, stmt := range truncateStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// InsertCustomers inserts all cleaned customers in one transaction and
// returns the number persisted.
func (s *Store) InsertCustomers(ctx context.Context, customers []core.Customer) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	for _, c := range customers {
		err := q.InsertCustomer(ctx, InsertCustomerParams{
			FirstName:        c.FirstName,
			LastName:         c.LastName,
			Email:            c.Email,
			Phone:            c.Phone,
			City:             c.City,
			RegistrationDate: c.RegistrationDate,
		})
		if err != nil {
			return 0, fmt.Errorf("customer %q: %w", c.Email, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(customers), nil
}

// InsertProducts inserts all cleaned products in one transaction and returns
// the number persisted.
func (s *Store) InsertProducts(ctx context.Context, products []core.Product) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	for _, p := range products {
		err := q.InsertProduct(ctx, InsertProductParams{
			ProductName:   p.Name,
			Category:      p.Category,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
		})
		if err != nil {
			return 0, fmt.Errorf("product %q: %w", p.Name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(products), nil
}

// CustomerKeysByEmail fetches the email -> surrogate key map.
func (s *Store) CustomerKeysByEmail(ctx context.Context) (map[string]int32, error) {
	return New(s.pool).ListCustomerKeys(ctx)
}

// ProductKeysByName fetches the product name -> surrogate key map.
func (s *Store) ProductKeysByName(ctx context.Context) (map[string]int32, error) {
	return New(s.pool).ListProductKeys(ctx)
}

// InsertOrders inserts each resolved order with its line item, all inside one
// transaction, and returns the number of orders persisted. The order's
// surrogate key is wired into its item as it is assigned.
func (s *Store) InsertOrders(ctx context.Context, orders []core.OrderWithItem) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	for _, o := range orders {
		orderID, err := q.InsertOrder(ctx, InsertOrderParams{
			CustomerID:  o.Order.CustomerID,
			OrderDate:   pgtype.Date{Time: o.Order.OrderDate, Valid: true},
			TotalAmount: o.Order.TotalAmount,
			Status:      o.Order.Status,
		})
		if err != nil {
			return 0, fmt.Errorf("order for customer %d: %w", o.Order.CustomerID, err)
		}

		err = q.InsertOrderItem(ctx, InsertOrderItemParams{
			OrderID:   orderID,
			ProductID: o.Item.ProductID,
			Quantity:  o.Item.Quantity,
			UnitPrice: o.Item.UnitPrice,
			Subtotal:  o.Item.Subtotal,
		})
		if err != nil {
			return 0, fmt.Errorf("order item for order %d: %w", orderID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(orders), nil
}
