package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Medicine is a catalog row: a brand name, its generic, the manufacturer
// and a reference price.
type Medicine struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Generic string  `json:"generic"`
	Company string  `json:"company"`
	Price   float64 `json:"price"`
}

// CreateMedicine inserts a catalog entry.
func (s *Store) CreateMedicine(ctx context.Context, m Medicine) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO medicines (name, generic, company, price)
		VALUES (?, ?, ?, ?)
	`, m.Name, m.Generic, m.Company, m.Price)
	if err != nil {
		return 0, fmt.Errorf("create medicine: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create medicine id: %w", err)
	}
	return id, nil
}

// SearchMedicines finds catalog entries whose name contains q
// (case-insensitive).
func (s *Store) SearchMedicines(ctx context.Context, q string) ([]Medicine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, generic, company, price
		FROM medicines
		WHERE name LIKE ? COLLATE NOCASE
		ORDER BY name
	`, "%"+strings.TrimSpace(q)+"%")
	if err != nil {
		return nil, fmt.Errorf("search medicines: %w", err)
	}
	defer rows.Close()

	return scanMedicines(rows)
}

// FindGeneric resolves a brand or generic name to its generic and lists
// every brand sharing that generic. Returns ErrNotFound when nothing
// matches.
func (s *Store) FindGeneric(ctx context.Context, name string) (string, []Medicine, error) {
	pattern := "%" + strings.TrimSpace(name) + "%"

	row := s.db.QueryRowContext(ctx, `
		SELECT generic
		FROM medicines
		WHERE name LIKE ? COLLATE NOCASE OR generic LIKE ? COLLATE NOCASE
		LIMIT 1
	`, pattern, pattern)

	var generic string
	if err := row.Scan(&generic); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrNotFound
		}
		return "", nil, fmt.Errorf("find generic: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, generic, company, price
		FROM medicines
		WHERE generic = ?
		ORDER BY price
	`, generic)
	if err != nil {
		return "", nil, fmt.Errorf("find generic brands: %w", err)
	}
	defer rows.Close()

	brands, err := scanMedicines(rows)
	if err != nil {
		return "", nil, err
	}
	return generic, brands, nil
}

// GetMedicineByID returns a single catalog entry or ErrNotFound.
func (s *Store) GetMedicineByID(ctx context.Context, id int64) (*Medicine, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, generic, company, price
		FROM medicines
		WHERE id = ?
	`, id)

	var m Medicine
	if err := row.Scan(&m.ID, &m.Name, &m.Generic, &m.Company, &m.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get medicine by id: %w", err)
	}
	return &m, nil
}

// GetMedicinesByNames returns catalog entries matching any of the names
// (case-insensitive exact match).
func (s *Store) GetMedicinesByNames(ctx context.Context, names []string) ([]Medicine, error) {
	if len(names) == 0 {
		return []Medicine{}, nil
	}

	placeholders := strings.Repeat("?,", len(names))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, generic, company, price
		FROM medicines
		WHERE name IN (%s) COLLATE NOCASE
		ORDER BY name
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("get medicines by names: %w", err)
	}
	defer rows.Close()

	return scanMedicines(rows)
}

// CountMedicines returns the catalog size.
func (s *Store) CountMedicines(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medicines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count medicines: %w", err)
	}
	return n, nil
}

func scanMedicines(rows *sql.Rows) ([]Medicine, error) {
	var out []Medicine
	for rows.Next() {
		var m Medicine
		var company sql.NullString
		var price sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.Name, &m.Generic, &company, &price); err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		m.Company = company.String
		m.Price = price.Float64
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medicines: %w", err)
	}
	if out == nil {
		out = []Medicine{}
	}
	return out, nil
}
