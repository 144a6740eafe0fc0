// Package store persists crawled politician records in an embedded sqlite
// database, keyed by (name, party).
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/polwatch/nec-crawler/models"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS politicians (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	party       TEXT NOT NULL DEFAULT '',
	district    TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	email       TEXT NOT NULL DEFAULT '',
	office      TEXT NOT NULL DEFAULT '',
	source_url  TEXT NOT NULL DEFAULT '',
	confidence  REAL NOT NULL DEFAULT 0,
	crawled_at  TIMESTAMP,
	UNIQUE (name, party)
)`,
	`CREATE TABLE IF NOT EXISTS careers (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	politician_id INTEGER NOT NULL REFERENCES politicians(id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	period        TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL
)`,
}

// UpsertResult reports what Upsert did for one record.
type UpsertResult struct {
	ID    int64
	IsNew bool
}

// Store wraps the sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Upsert inserts or updates the record keyed by (name, party). Career rows
// are fully replaced on every call so the table mirrors the latest crawl.
func (s *Store) Upsert(ctx context.Context, p *models.Politician) (*UpsertResult, error) {
	if p == nil {
		return nil, fmt.Errorf("politician is nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var id int64
	isNew := false
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM politicians WHERE name = ? AND party = ?`,
		p.Name, p.Party,
	).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			`INSERT INTO politicians (name, party, district, phone, email, office, source_url, confidence, crawled_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Party, p.District,
			p.Contact.Phone, p.Contact.Email, p.Contact.Office,
			p.Metadata.SourceURL, p.Metadata.Confidence, p.Metadata.CrawledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert politician: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
		isNew = true
	case err != nil:
		return nil, fmt.Errorf("lookup politician: %w", err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE politicians
			 SET district = ?, phone = ?, email = ?, office = ?, source_url = ?, confidence = ?, crawled_at = ?
			 WHERE id = ?`,
			p.District,
			p.Contact.Phone, p.Contact.Email, p.Contact.Office,
			p.Metadata.SourceURL, p.Metadata.Confidence, p.Metadata.CrawledAt,
			id,
		)
		if err != nil {
			return nil, fmt.Errorf("update politician: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM careers WHERE politician_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clear careers: %w", err)
	}
	for i, item := range p.Career {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO careers (politician_id, position, period, description) VALUES (?, ?, ?, ?)`,
			id, i, item.Period, item.Description,
		); err != nil {
			return nil, fmt.Errorf("insert career: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &UpsertResult{ID: id, IsNew: isNew}, nil
}

// Careers returns the stored career rows for a politician, in position
// order.
func (s *Store) Careers(ctx context.Context, politicianID int64) ([]models.CareerItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT period, description FROM careers WHERE politician_id = ? ORDER BY position`,
		politicianID,
	)
	if err != nil {
		return nil, fmt.Errorf("query careers: %w", err)
	}
	defer rows.Close()

	var items []models.CareerItem
	for rows.Next() {
		var item models.CareerItem
		if err := rows.Scan(&item.Period, &item.Description); err != nil {
			return nil, fmt.Errorf("scan career: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
