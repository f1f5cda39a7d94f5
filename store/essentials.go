package store

import (
	"context"
	"sort"
)

// essentialCategories maps a daily-essentials category to the medicine
// names it covers in the catalog.
var essentialCategories = map[string][]string{
	"pain":  {"Paracetamol", "Ibuprofen"},
	"cold":  {"Cetirizine", "Paracetamol"},
	"fever": {"Paracetamol", "Ibuprofen"},
}

// EssentialCategories lists the known daily-essentials categories.
func EssentialCategories() []string {
	out := make([]string, 0, len(essentialCategories))
	for cat := range essentialCategories {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// EssentialsByCategory returns the catalog entries for a category. An
// unknown category yields an empty list, not an error.
func (s *Store) EssentialsByCategory(ctx context.Context, category string) ([]Medicine, error) {
	names, ok := essentialCategories[category]
	if !ok {
		return []Medicine{}, nil
	}
	return s.GetMedicinesByNames(ctx, names)
}
