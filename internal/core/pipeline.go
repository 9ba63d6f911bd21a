package core

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fleximart/etl/internal/source"
)

// Sources holds the three raw exports for one run.
type Sources struct {
	Customers *source.Table
	Products  *source.Table
	Sales     *source.Table
}

// Result carries everything the report collaborator needs: the per-stream
// quality counts plus run-level notes. LoadErr is set when the storage stage
// failed; cleaned counts are still valid in that case, only unpersisted.
type Result struct {
	Customers QualityCounts
	Products  QualityCounts
	Sales     QualityCounts

	OrdersInserted     int
	OrderItemsInserted int
	ExtraNotes         []string

	LoadErr error
}

// Pipeline runs the batch: clean, load, reconcile, load again.
// A nil store skips the load phase entirely (the caller notes why).
type Pipeline struct {
	store Store
	log   *slog.Logger
}

// New creates a pipeline around a storage collaborator.
func New(store Store, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{store: store, log: log}
}

// Run executes the full batch. Stages are strictly ordered except for the
// cleaners: customers, products, and sales cleaning are mutually independent
// and run concurrently, each owning its counts and identifier map.
// Reconciliation runs only after both surrogate-key maps are fetched.
//
// Row-level problems never abort the run; they are absorbed into the
// QualityCounts. Only a storage failure stops the load, and even then the
// Result comes back complete so a report can still be written.
func (p *Pipeline) Run(ctx context.Context, src Sources) *Result {
	res := &Result{}

	var (
		customers []Customer
		products  []Product
		sales     []Sale
		custRefs  map[string]string
		prodRefs  map[string]string
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		customers, res.Customers, custRefs = CleanCustomers(src.Customers)
		return nil
	})
	g.Go(func() error {
		products, res.Products, prodRefs = CleanProducts(src.Products, src.Sales)
		return nil
	})
	g.Go(func() error {
		sales, res.Sales = CleanSales(src.Sales)
		return nil
	})
	_ = g.Wait() // cleaners never fail; they only count

	p.log.Info("cleaning complete",
		"customers", len(customers), "customers_dropped", res.Customers.RowsDropped,
		"products", len(products), "products_dropped", res.Products.RowsDropped,
		"sales", len(sales), "sales_dropped", res.Sales.RowsDropped,
	)

	if p.store == nil {
		return res
	}

	if err := p.load(ctx, res, customers, products, sales, custRefs, prodRefs); err != nil {
		res.LoadErr = err
		res.ExtraNotes = append(res.ExtraNotes, fmt.Sprintf("Database error: %v", err))
		p.log.Error("load failed", "error", err)
	}

	return res
}

// load persists the cleaned streams and reconciles sales into orders.
// Each entity stream is written inside one transaction by the store, so a
// failure never leaves a table half-loaded relative to the report.
func (p *Pipeline) load(
	ctx context.Context,
	res *Result,
	customers []Customer,
	products []Product,
	sales []Sale,
	custRefs, prodRefs map[string]string,
) error {
	if err := p.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := p.store.TruncateAll(ctx); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}

	n, err := p.store.InsertCustomers(ctx, customers)
	if err != nil {
		return fmt.Errorf("insert customers: %w", err)
	}
	res.Customers.Loaded = n
	p.log.Info("customers loaded", "rows", n)

	n, err = p.store.InsertProducts(ctx, products)
	if err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	res.Products.Loaded = n
	p.log.Info("products loaded", "rows", n)

	emailToKey, err := p.store.CustomerKeysByEmail(ctx)
	if err != nil {
		return fmt.Errorf("fetch customer keys: %w", err)
	}
	nameToKey, err := p.store.ProductKeysByName(ctx)
	if err != nil {
		return fmt.Errorf("fetch product keys: %w", err)
	}

	resolved, droppedFK := ResolveSales(sales, KeyMaps{
		CustomerRefToEmail: custRefs,
		EmailToKey:         emailToKey,
		ProductRefToName:   prodRefs,
		NameToKey:          nameToKey,
	})

	orders, err := p.store.InsertOrders(ctx, resolved)
	if err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}

	res.Sales.Loaded = len(sales) - droppedFK
	if droppedFK > 0 {
		res.Sales.RowsDropped += droppedFK
		res.Sales.Notef("Dropped %d sales rows during load because customer/product could not be mapped (e.g., customers dropped due to missing email).", droppedFK)
	}

	res.OrdersInserted = orders
	res.OrderItemsInserted = orders // exactly one item per order
	res.ExtraNotes = append(res.ExtraNotes,
		fmt.Sprintf("Orders inserted: %d", orders),
		fmt.Sprintf("Order items inserted: %d", orders),
	)
	p.log.Info("orders loaded", "orders", orders, "unreconcilable", droppedFK)

	return nil
}
