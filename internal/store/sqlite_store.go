package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"

	"github.com/kittclouds/palladian/pkg/ner"
)

// SQLiteStore keeps models in a single SQLite table. The payload column
// holds the JSON form of the model.
type SQLiteStore struct {
	mu  sync.RWMutex
	db  *sql.DB
	now func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS models (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    language_mode TEXT NOT NULL,
    training_mode TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_models_updated ON models(updated_at);
`

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Versions reports the SQLite and sqlite-vec versions of the embedded build.
func (s *SQLiteStore) Versions(ctx context.Context) (sqlite, vec string, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err = s.db.QueryRowContext(ctx, `SELECT sqlite_version(), vec_version()`).Scan(&sqlite, &vec)
	if err != nil {
		return "", "", fmt.Errorf("store: versions: %w", err)
	}
	return sqlite, vec, nil
}

// =============================================================================
// Model CRUD
// =============================================================================

// SaveModel stores m under name, replacing an existing model of that name.
// The ID and creation time of a replaced model are kept.
func (s *SQLiteStore) SaveModel(ctx context.Context, name string, m *ner.Model) (ModelInfo, error) {
	if name == "" {
		return ModelInfo{}, errors.New("store: model name is empty")
	}
	if m == nil {
		return ModelInfo{}, errors.New("store: model is nil")
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("store: encode model %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixMilli()
	info := ModelInfo{
		ID:           uuid.NewString(),
		Name:         name,
		LanguageMode: m.LanguageMode(),
		TrainingMode: m.TrainingMode(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO models (id, name, language_mode, training_mode, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			language_mode = excluded.language_mode,
			training_mode = excluded.training_mode,
			payload = excluded.payload,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`, info.ID, info.Name, string(info.LanguageMode), string(info.TrainingMode), string(payload),
		info.CreatedAt, info.UpdatedAt).Scan(&info.ID, &info.CreatedAt)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("store: save model %s: %w", name, err)
	}
	return info, nil
}

// LoadModel decodes the model stored under name.
func (s *SQLiteStore) LoadModel(ctx context.Context, name string) (*ner.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM models WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load model %s: %w", name, err)
	}

	m := new(ner.Model)
	if err := json.Unmarshal([]byte(payload), m); err != nil {
		return nil, fmt.Errorf("store: decode model %s: %w", name, err)
	}
	return m, nil
}

// ListModels returns all models ordered by name.
func (s *SQLiteStore) ListModels(ctx context.Context) ([]ModelInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, language_mode, training_mode, created_at, updated_at
		FROM models ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("store: list models: %w", err)
	}
	defer rows.Close()

	var out []ModelInfo
	for rows.Next() {
		var info ModelInfo
		var language, training string
		if err := rows.Scan(&info.ID, &info.Name, &language, &training, &info.CreatedAt, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan model: %w", err)
		}
		info.LanguageMode = ner.LanguageMode(language)
		info.TrainingMode = ner.TrainingMode(training)
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeleteModel removes the model stored under name.
func (s *SQLiteStore) DeleteModel(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM models WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("store: delete model %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete model %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	return nil
}

// =============================================================================
// Export / Import
// =============================================================================

type exportedModel struct {
	ModelInfo
	Payload json.RawMessage `json:"payload"`
}

type exportData struct {
	Models []exportedModel `json:"models"`
}

// Export serializes every stored model to JSON bytes.
func (s *SQLiteStore) Export(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, language_mode, training_mode, payload, created_at, updated_at
		FROM models ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("store: export models: %w", err)
	}
	defer rows.Close()

	data := exportData{Models: []exportedModel{}}
	for rows.Next() {
		var e exportedModel
		var language, training, payload string
		if err := rows.Scan(&e.ID, &e.Name, &language, &training, &payload, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan model: %w", err)
		}
		e.LanguageMode = ner.LanguageMode(language)
		e.TrainingMode = ner.TrainingMode(training)
		e.Payload = json.RawMessage(payload)
		data.Models = append(data.Models, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return json.Marshal(data)
}

// Import replaces all stored models with the contents of an export.
func (s *SQLiteStore) Import(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var in exportData
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("store: import unmarshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM models`); err != nil {
		return fmt.Errorf("store: clear models: %w", err)
	}
	for _, e := range in.Models {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO models (id, name, language_mode, training_mode, payload, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.Name, string(e.LanguageMode), string(e.TrainingMode), string(e.Payload),
			e.CreatedAt, e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("store: import model %s: %w", e.Name, err)
		}
	}
	return tx.Commit()
}

// Compile-time interface check
var _ ModelStore = (*SQLiteStore)(nil)
