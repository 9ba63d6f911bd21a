package core

import (
	"github.com/fleximart/etl/internal/source"
)

// CleanCustomers transforms the raw customer export into cleaned rows.
//
// Policy, in order: normalize phone/city/registration_date, drop rows with a
// missing email (the storage schema requires email NOT NULL UNIQUE), then
// deduplicate by email keeping the first occurrence in input order.
//
// The returned map carries raw customer identifier -> email for every
// surviving row; the reconciler needs it later to bridge raw sales
// references to surrogate keys.
func CleanCustomers(t *source.Table) ([]Customer, QualityCounts, map[string]string) {
	qc := QualityCounts{RowsRead: t.Len()}
	rawToEmail := make(map[string]string)

	var cleaned []Customer
	seen := make(map[string]bool)
	missingEmail := 0

	for _, row := range t.Rows {
		email := t.Cell(row, "email")
		if IsSentinel(email) {
			missingEmail++
			continue
		}
		if seen[email] {
			qc.DuplicatesRemoved++
			continue
		}
		seen[email] = true

		if rawID := t.Cell(row, "customer_id"); rawID != "" {
			rawToEmail[rawID] = email
		}

		cleaned = append(cleaned, Customer{
			FirstName:        t.Cell(row, "first_name"),
			LastName:         t.Cell(row, "last_name"),
			Email:            email,
			Phone:            NormalizePhone(t.Cell(row, "phone")),
			City:             NormalizeCity(t.Cell(row, "city")),
			RegistrationDate: ParseDate(t.Cell(row, "registration_date")),
		})
	}

	qc.RowsDropped += missingEmail
	if missingEmail > 0 {
		qc.Notef("Dropped %d customer rows due to missing email (NOT NULL constraint).", missingEmail)
	}

	return cleaned, qc, rawToEmail
}
