package core

import (
	"sort"

	"github.com/fleximart/etl/internal/source"
)

// CleanProducts transforms the raw product export into cleaned rows.
//
// Missing stock quantities default to 0 and are counted as filled. Missing
// or unparseable prices are imputed from the median unit_price of sales rows
// referencing the same raw product identifier; rows whose price remains
// unrecoverable are dropped, then the survivors are deduplicated by raw
// identifier keeping the first occurrence.
//
// Imputation deliberately reads the raw sales table, not the cleaned one:
// medians include sales rows that later fail their own validation, matching
// the established behavior of this pipeline.
//
// The returned map carries raw product identifier -> product name for every
// surviving row, for the reconciler.
func CleanProducts(products, sales *source.Table) ([]Product, QualityCounts, map[string]string) {
	qc := QualityCounts{RowsRead: products.Len()}
	rawToName := make(map[string]string)

	medians := medianUnitPrices(sales)

	// Normalize and recover prices first; dedup only sees rows that survive
	// the price requirement, so a dropped first occurrence does not shadow a
	// later duplicate.
	type survivor struct {
		rawID   string
		product Product
	}

	var survivors []survivor
	droppedPrice := 0

	for _, row := range products.Rows {
		rawID := products.Cell(row, "product_id")

		stock := 0
		if stockText := products.Cell(row, "stock_quantity"); IsSentinel(stockText) {
			qc.MissingFilled++
		} else if n, ok := ParseInt(stockText); ok && n >= 0 {
			stock = n
		}

		price, ok := ParseFloat(products.Cell(row, "price"))
		if ok && price < 0 {
			// The schema requires a non-negative price; a negative one is as
			// unusable as a missing one and goes through the same recovery.
			ok = false
		}
		if !ok {
			if med, found := medians[rawID]; found {
				price = Round2(med)
				ok = true
				qc.MissingFilled++
			}
		}
		if !ok {
			droppedPrice++
			continue
		}

		survivors = append(survivors, survivor{
			rawID: rawID,
			product: Product{
				Name:          products.Cell(row, "product_name"),
				Category:      NormalizeCategory(products.Cell(row, "category")),
				Price:         price,
				StockQuantity: stock,
			},
		})
	}

	qc.RowsDropped += droppedPrice
	if droppedPrice > 0 {
		qc.Notef("Dropped %d product rows due to missing price not recoverable from sales.", droppedPrice)
	}

	var cleaned []Product
	seen := make(map[string]bool)
	for _, s := range survivors {
		if seen[s.rawID] {
			qc.DuplicatesRemoved++
			continue
		}
		seen[s.rawID] = true
		if s.rawID != "" {
			rawToName[s.rawID] = s.product.Name
		}
		cleaned = append(cleaned, s.product)
	}

	return cleaned, qc, rawToName
}

// medianUnitPrices computes the median numeric unit_price per raw product
// identifier across all sales rows. Non-numeric prices are excluded; products
// never referenced by sales are simply absent from the map.
func medianUnitPrices(sales *source.Table) map[string]float64 {
	byProduct := make(map[string][]float64)
	for _, row := range sales.Rows {
		pid := sales.Cell(row, "product_id")
		if pid == "" {
			continue
		}
		if price, ok := ParseFloat(sales.Cell(row, "unit_price")); ok {
			byProduct[pid] = append(byProduct[pid], price)
		}
	}

	medians := make(map[string]float64, len(byProduct))
	for pid, prices := range byProduct {
		medians[pid] = median(prices)
	}
	return medians
}

// median returns the middle value of prices, or the mean of the two middle
// values for even-length input. Callers guarantee a non-empty slice.
func median(prices []float64) float64 {
	sort.Float64s(prices)
	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		return prices[mid]
	}
	return (prices[mid-1] + prices[mid]) / 2
}
