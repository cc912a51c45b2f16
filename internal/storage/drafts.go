package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// AddPageDraftKey is the fixed key under which the add-page form draft is kept.
const AddPageDraftKey = "add-page-draft"

// DraftStore keeps JSON form drafts, one per (scope, key).
type DraftStore struct {
	db *DB
}

func NewDraftStore(db *DB) *DraftStore {
	return &DraftStore{db: db}
}

// Put overwrites the draft with the JSON encoding of v.
func (s *DraftStore) Put(ctx context.Context, scope, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return s.PutRaw(ctx, scope, key, string(payload))
}

// PutRaw stores payload verbatim.
func (s *DraftStore) PutRaw(ctx context.Context, scope, key, payload string) error {
	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO drafts (scope, key, payload, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(scope, key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		scope, key, payload,
	)
	if err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	return nil
}

// Get decodes the draft into v. It reports false when there is no usable draft;
// a stored payload that is not valid JSON counts as no draft.
func (s *DraftStore) Get(ctx context.Context, scope, key string, v any) (bool, error) {
	var payload string
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT payload FROM drafts WHERE scope = ? AND key = ?`, scope, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get draft: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		log.Printf("WARN: draft %s/%s is not valid JSON, ignoring it: %v", scope, key, err)
		return false, nil
	}
	return true, nil
}

// Clear removes the draft.
func (s *DraftStore) Clear(ctx context.Context, scope, key string) error {
	if _, err := s.db.conn.ExecContext(ctx, `DELETE FROM drafts WHERE scope = ? AND key = ?`, scope, key); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
