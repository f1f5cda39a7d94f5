package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUsernameTaken is returned when registering a duplicate username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrNotFound is returned by lookups that matched no row.
	ErrNotFound = errors.New("not found")
)

// User is an account row. The password is stored only as a bcrypt hash.
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	CreatedAt      time.Time
}

// CreateUser inserts a new user with the given bcrypt hash.
func (s *Store) CreateUser(ctx context.Context, username, hashedPassword string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, hashed_password)
		VALUES (?, ?)
	`, username, hashedPassword)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create user id: %w", err)
	}
	return id, nil
}

// GetUserByUsername returns the user or ErrNotFound.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, hashed_password, created_at
		FROM users
		WHERE username = ?
	`, strings.TrimSpace(username))

	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.HashedPassword, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// SaveMedicine records a user's saved medicine. Saving the same medicine
// twice is a no-op.
func (s *Store) SaveMedicine(ctx context.Context, userID, medicineID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO saved_medicines (user_id, medicine_id)
		VALUES (?, ?)
	`, userID, medicineID)
	if err != nil {
		return fmt.Errorf("save medicine: %w", err)
	}
	return nil
}

// GetSavedMedicines returns the medicines a user has saved.
func (s *Store) GetSavedMedicines(ctx context.Context, userID int64) ([]Medicine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.generic, m.company, m.price
		FROM saved_medicines sm
		JOIN medicines m ON m.id = sm.medicine_id
		WHERE sm.user_id = ?
		ORDER BY m.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("get saved medicines: %w", err)
	}
	defer rows.Close()

	return scanMedicines(rows)
}
