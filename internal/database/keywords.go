package database

import (
	"context"
	"fmt"
	"log/slog"
)

// Keyword represents a stored keyword rule. Keyword text is unique
// across the table and is the rule's user-facing identity.
type Keyword struct {
	ID      int64
	Keyword string
	IsRegex bool
}

// AddKeyword inserts a keyword rule. It returns false with a nil error
// when the keyword already exists; duplicates are an expected outcome,
// not a failure.
func (db *DB) AddKeyword(ctx context.Context, keyword string, isRegex bool) (bool, error) {
	res, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO keywords (keyword, is_regex) VALUES (?, ?)`,
		keyword, boolToInt(isRegex),
	)
	if err != nil {
		return false, fmt.Errorf("failed to add keyword: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteKeyword removes a keyword rule by exact text. It returns false
// with a nil error when no row matched.
func (db *DB) DeleteKeyword(ctx context.Context, keyword string) (bool, error) {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM keywords WHERE keyword = ?`, keyword,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete keyword: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// ListKeywords retrieves all keyword rules in insertion order.
func (db *DB) ListKeywords(ctx context.Context) ([]Keyword, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, keyword, is_regex FROM keywords ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list keywords: %w", err)
	}
	defer rows.Close()

	var keywords []Keyword
	for rows.Next() {
		var kw Keyword
		var isRegex int
		if err := rows.Scan(&kw.ID, &kw.Keyword, &isRegex); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		kw.IsRegex = isRegex != 0
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}

// CountKeywords returns the number of stored keyword rules.
func (db *DB) CountKeywords(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM keywords`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count keywords: %w", err)
	}
	return count, nil
}

// SeedDefaults inserts the built-in default keyword list when the store
// is empty. Duplicates within the default list are swallowed. A store
// that already holds rules is left untouched.
func (db *DB) SeedDefaults(ctx context.Context) error {
	count, err := db.CountKeywords(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	slog.Info("Seeding default keywords", "count", len(DefaultKeywords))
	for _, kw := range DefaultKeywords {
		if _, err := db.AddKeyword(ctx, kw, false); err != nil {
			return fmt.Errorf("failed to seed keyword %q: %w", kw, err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
