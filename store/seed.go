package store

import (
	"context"
	"fmt"

	"github.com/medinfo/medinfo-api/logging"
)

// defaultCatalog is the bootstrap medicine catalog inserted on first run so
// the essentials and generic-lookup endpoints have data before any admin
// additions.
var defaultCatalog = []Medicine{
	{Name: "Paracetamol", Generic: "Paracetamol", Company: "Cipla", Price: 15.00},
	{Name: "Crocin", Generic: "Paracetamol", Company: "GSK", Price: 20.50},
	{Name: "Dolo 650", Generic: "Paracetamol", Company: "Micro Labs", Price: 30.00},
	{Name: "Ibuprofen", Generic: "Ibuprofen", Company: "Abbott", Price: 18.00},
	{Name: "Brufen", Generic: "Ibuprofen", Company: "Abbott", Price: 25.00},
	{Name: "Cetirizine", Generic: "Cetirizine", Company: "Dr. Reddy's", Price: 12.00},
	{Name: "Cetzine", Generic: "Cetirizine", Company: "GSK", Price: 16.50},
}

// Seed inserts the default catalog when the medicines table is empty.
func (s *Store) Seed(ctx context.Context) error {
	count, err := s.CountMedicines(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, m := range defaultCatalog {
		if _, err := s.CreateMedicine(ctx, m); err != nil {
			return fmt.Errorf("seed %s: %w", m.Name, err)
		}
	}

	logging.Info("Seeded medicine catalog", "count", len(defaultCatalog))
	return nil
}
