package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SavedWireframe is one entry of the saved wireframes list.
type SavedWireframe struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HTML        string    `json:"html"`
	PageCount   int       `json:"pageCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WireframeStore persists saved wireframes in SQLite.
type WireframeStore struct {
	db *DB
}

func NewWireframeStore(db *DB) *WireframeStore {
	return &WireframeStore{db: db}
}

// Save stores w, assigning an id and creation time when missing.
func (s *WireframeStore) Save(ctx context.Context, w *SavedWireframe) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	// Stored as text; a single zone keeps ORDER BY created_at chronological.
	w.CreatedAt = w.CreatedAt.UTC()
	if w.PageCount < 1 {
		w.PageCount = 1
	}
	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO saved_wireframes (id, name, description, html, page_count, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.Description, w.HTML, w.PageCount, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save wireframe %q: %w", w.Name, err)
	}
	return nil
}

// Ping checks the underlying database.
func (s *WireframeStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Get returns one saved wireframe.
func (s *WireframeStore) Get(ctx context.Context, id string) (*SavedWireframe, error) {
	w := &SavedWireframe{}
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, html, page_count, created_at FROM saved_wireframes WHERE id = ?`, id,
	).Scan(&w.ID, &w.Name, &w.Description, &w.HTML, &w.PageCount, &w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get wireframe: %w", err)
	}
	return w, nil
}

// List returns saved wireframes, newest first.
func (s *WireframeStore) List(ctx context.Context) ([]SavedWireframe, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT id, name, description, html, page_count, created_at FROM saved_wireframes ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list wireframes: %w", err)
	}
	defer rows.Close()

	var out []SavedWireframe
	for rows.Next() {
		var w SavedWireframe
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.HTML, &w.PageCount, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wireframe: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
