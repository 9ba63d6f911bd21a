package core

// reconcile.go resolves cleaned sales to persisted surrogate keys.
//
// Surrogate keys do not exist until customers and products are inserted, so
// resolution is two-stage: the cleaners record raw identifier -> natural key
// (email, product name) while they still see the raw columns, and the storage
// layer supplies natural key -> surrogate key after the load. A sale that
// fails either hop is unreconcilable: its referenced entity was dropped
// upstream (commonly a customer missing email) or never existed.

// KeyMaps bundles the four lookup tables reconciliation needs.
type KeyMaps struct {
	CustomerRefToEmail map[string]string // raw customer id -> email (built by CleanCustomers)
	EmailToKey         map[string]int32  // email -> surrogate key (fetched after load)
	ProductRefToName   map[string]string // raw product id -> name (built by CleanProducts)
	NameToKey          map[string]int32  // product name -> surrogate key (fetched after load)
}

// ResolveSales maps each cleaned sale to an Order/OrderItem pair carrying
// surrogate keys, preserving input order. Unreconcilable sales are skipped
// and counted; they produce no rows.
func ResolveSales(sales []Sale, keys KeyMaps) ([]OrderWithItem, int) {
	var resolved []OrderWithItem
	dropped := 0

	for _, sale := range sales {
		email, ok := keys.CustomerRefToEmail[sale.RawCustomerRef]
		if !ok {
			dropped++
			continue
		}
		customerKey, ok := keys.EmailToKey[email]
		if !ok {
			dropped++
			continue
		}

		name, ok := keys.ProductRefToName[sale.RawProductRef]
		if !ok {
			dropped++
			continue
		}
		productKey, ok := keys.NameToKey[name]
		if !ok {
			dropped++
			continue
		}

		status := sale.Status
		if IsSentinel(status) {
			status = "Pending"
		}

		resolved = append(resolved, OrderWithItem{
			Order: Order{
				CustomerID:  customerKey,
				OrderDate:   sale.OrderDate,
				TotalAmount: sale.TotalAmount,
				Status:      status,
			},
			Item: OrderItem{
				ProductID: productKey,
				Quantity:  sale.Quantity,
				UnitPrice: sale.UnitPrice,
				Subtotal:  sale.Subtotal,
			},
		})
	}

	return resolved, dropped
}
