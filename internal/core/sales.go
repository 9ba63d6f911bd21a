package core

import (
	"github.com/fleximart/etl/internal/source"
)

// CleanSales transforms the raw sales export into cleaned Sale rows that
// still carry their raw customer/product references.
//
// Policy, in order: deduplicate by transaction_id keeping the first
// occurrence, drop rows missing either entity reference, then drop rows with
// an unparseable date, a non-positive quantity, or a negative unit price.
// The two drop causes get distinct notes so the report separates "cannot
// satisfy a foreign key" from "malformed measures".
func CleanSales(t *source.Table) ([]Sale, QualityCounts) {
	qc := QualityCounts{RowsRead: t.Len()}

	var cleaned []Sale
	seen := make(map[string]bool)
	missingRefs := 0
	invalid := 0

	for _, row := range t.Rows {
		txnID := t.Cell(row, "transaction_id")
		if seen[txnID] {
			qc.DuplicatesRemoved++
			continue
		}
		seen[txnID] = true

		custRef := t.Cell(row, "customer_id")
		prodRef := t.Cell(row, "product_id")
		if IsSentinel(custRef) || IsSentinel(prodRef) {
			missingRefs++
			continue
		}

		orderDate := ParseDate(t.Cell(row, "transaction_date"))
		quantity, qtyOK := ParseInt(t.Cell(row, "quantity"))
		unitPrice, priceOK := ParseFloat(t.Cell(row, "unit_price"))

		if !orderDate.Valid || !qtyOK || quantity <= 0 || !priceOK || unitPrice < 0 {
			invalid++
			continue
		}

		subtotal := Round2(float64(quantity) * unitPrice)
		cleaned = append(cleaned, Sale{
			TransactionID:  txnID,
			RawCustomerRef: custRef,
			RawProductRef:  prodRef,
			OrderDate:      orderDate.Time,
			Status:         t.Cell(row, "status"),
			Quantity:       quantity,
			UnitPrice:      unitPrice,
			Subtotal:       subtotal,
			TotalAmount:    subtotal, // one line item per transaction
		})
	}

	qc.RowsDropped += missingRefs
	if missingRefs > 0 {
		qc.Notef("Dropped %d sales rows due to missing customer_id/product_id.", missingRefs)
	}
	qc.RowsDropped += invalid
	if invalid > 0 {
		qc.Notef("Dropped %d sales rows due to invalid date/quantity/unit_price.", invalid)
	}

	return cleaned, qc
}
