package core

import (
	"testing"
	"time"
)

func testSale(txn, custRef, prodRef string) Sale {
	return Sale{
		TransactionID:  txn,
		RawCustomerRef: custRef,
		RawProductRef:  prodRef,
		OrderDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:         "Delivered",
		Quantity:       2,
		UnitPrice:      10,
		Subtotal:       20,
		TotalAmount:    20,
	}
}

func testKeyMaps() KeyMaps {
	return KeyMaps{
		CustomerRefToEmail: map[string]string{"C001": "asha@example.com"},
		EmailToKey:         map[string]int32{"asha@example.com": 1},
		ProductRefToName:   map[string]string{"P100": "Laptop Pro"},
		NameToKey:          map[string]int32{"Laptop Pro": 7},
	}
}

func TestResolveSalesFullyResolved(t *testing.T) {
	resolved, dropped := ResolveSales([]Sale{testSale("T1", "C001", "P100")}, testKeyMaps())

	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(resolved) != 1 {
		t.Fatalf("got %d resolved rows, want 1", len(resolved))
	}
	r := resolved[0]
	if r.Order.CustomerID != 1 {
		t.Errorf("order customer key = %d, want 1", r.Order.CustomerID)
	}
	if r.Item.ProductID != 7 {
		t.Errorf("item product key = %d, want 7", r.Item.ProductID)
	}
	if r.Order.TotalAmount != 20 || r.Item.Subtotal != 20 {
		t.Errorf("amounts = %v/%v, want 20/20", r.Order.TotalAmount, r.Item.Subtotal)
	}
	if r.Order.Status != "Delivered" {
		t.Errorf("status = %q, want Delivered", r.Order.Status)
	}
}

func TestResolveSalesDropsUnreconcilable(t *testing.T) {
	tests := []struct {
		name string
		sale Sale
	}{
		{name: "customer ref never recorded", sale: testSale("T1", "C999", "P100")},
		{name: "product ref never recorded", sale: testSale("T2", "C001", "P999")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, dropped := ResolveSales([]Sale{tt.sale}, testKeyMaps())
			if dropped != 1 {
				t.Errorf("dropped = %d, want 1", dropped)
			}
			if len(resolved) != 0 {
				t.Errorf("resolved = %d rows, want 0", len(resolved))
			}
		})
	}
}

func TestResolveSalesDropsWhenUpstreamEntityDropped(t *testing.T) {
	// The customer existed in the raw export (its raw ref maps to an email)
	// but was dropped before load, so the email has no surrogate key.
	keys := testKeyMaps()
	keys.CustomerRefToEmail["C777"] = "dropped@example.com"

	resolved, dropped := ResolveSales([]Sale{testSale("T1", "C777", "P100")}, keys)
	if dropped != 1 || len(resolved) != 0 {
		t.Errorf("dropped = %d, resolved = %d; want the cascaded drop", dropped, len(resolved))
	}
}

func TestResolveSalesDefaultsStatus(t *testing.T) {
	sale := testSale("T1", "C001", "P100")
	sale.Status = ""

	resolved, _ := ResolveSales([]Sale{sale}, testKeyMaps())
	if len(resolved) != 1 {
		t.Fatalf("got %d resolved rows, want 1", len(resolved))
	}
	if resolved[0].Order.Status != "Pending" {
		t.Errorf("status = %q, want default Pending", resolved[0].Order.Status)
	}
}

func TestResolveSalesPreservesInputOrder(t *testing.T) {
	keys := testKeyMaps()
	keys.CustomerRefToEmail["C002"] = "ravi@example.com"
	keys.EmailToKey["ravi@example.com"] = 2

	resolved, _ := ResolveSales([]Sale{
		testSale("T1", "C002", "P100"),
		testSale("T2", "C001", "P100"),
		testSale("T3", "C002", "P100"),
	}, keys)

	if len(resolved) != 3 {
		t.Fatalf("got %d resolved rows, want 3", len(resolved))
	}
	want := []int32{2, 1, 2}
	for i, r := range resolved {
		if r.Order.CustomerID != want[i] {
			t.Errorf("resolved[%d].CustomerID = %d, want %d", i, r.Order.CustomerID, want[i])
		}
	}
}

func TestResolveSalesSoundness(t *testing.T) {
	// No resolved row may carry a surrogate key the storage layer never issued.
	keys := testKeyMaps()
	sales := []Sale{
		testSale("T1", "C001", "P100"),
		testSale("T2", "C404", "P100"),
		testSale("T3", "C001", "P404"),
	}

	issued := map[int32]bool{}
	for _, k := range keys.EmailToKey {
		issued[k] = true
	}
	issuedProducts := map[int32]bool{}
	for _, k := range keys.NameToKey {
		issuedProducts[k] = true
	}

	resolved, _ := ResolveSales(sales, keys)
	for _, r := range resolved {
		if !issued[r.Order.CustomerID] {
			t.Errorf("order references customer key %d that storage never issued", r.Order.CustomerID)
		}
		if !issuedProducts[r.Item.ProductID] {
			t.Errorf("item references product key %d that storage never issued", r.Item.ProductID)
		}
	}
}
