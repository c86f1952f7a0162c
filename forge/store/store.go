// Package store persists a history of generation runs in a local SQLite
// database so users can compare estimator output across objects and settings.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const DefaultDBName = "shellforge.db"

type DB struct {
	*sql.DB
	path string
}

// Open opens or creates the SQLite database at the given path and makes sure
// the schema exists.
func Open(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: dbPath,
	}

	if err := db.ensureSchemaExists(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// ensureSchemaExists checks if the schema exists and initializes it if not.
func (db *DB) ensureSchemaExists() error {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&tableName)

	if err == sql.ErrNoRows {
		return db.InitSchema()
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// InitSchema initializes the database schema.
func (db *DB) InitSchema() error {
	_, err := db.Exec(schema)
	return err
}

// Run is one recorded generation (or estimate-only) run.
type Run struct {
	RunID       string
	SourceName  string
	VertexCount int64
	FaceCount   int64
	DetailLevel float64
	VoxelSize   float64
	Offset      float64
	Thickness   float64
	OpenBottom  bool
	FastMode    bool
	StageCount  int64
	DurationMS  float64
	CreatedAt   time.Time
}

// InsertRun records a completed run.
func (db *DB) InsertRun(r Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (
			run_id, source_name, vertex_count, face_count, detail_level,
			voxel_size, offset, thickness, open_bottom, fast_mode,
			stage_count, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.SourceName, r.VertexCount, r.FaceCount, r.DetailLevel,
		r.VoxelSize, r.Offset, r.Thickness, r.OpenBottom, r.FastMode,
		r.StageCount, r.DurationMS)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", r.RunID, err)
	}
	return nil
}

// GetRun fetches one run by id.
func (db *DB) GetRun(runID string) (*Run, error) {
	row := db.QueryRow(`
		SELECT run_id, source_name, vertex_count, face_count, detail_level,
		       voxel_size, offset, thickness, open_bottom, fast_mode,
		       stage_count, duration_ms, created_at
		FROM runs WHERE run_id = ?`, runID)
	return scanRun(row)
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]*Run, error) {
	rows, err := db.Query(`
		SELECT run_id, source_name, vertex_count, face_count, detail_level,
		       voxel_size, offset, thickness, open_bottom, fast_mode,
		       stage_count, duration_ms, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var createdAt string
	err := row.Scan(&r.RunID, &r.SourceName, &r.VertexCount, &r.FaceCount,
		&r.DetailLevel, &r.VoxelSize, &r.Offset, &r.Thickness, &r.OpenBottom,
		&r.FastMode, &r.StageCount, &r.DurationMS, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	if t, perr := time.Parse("2006-01-02 15:04:05", createdAt); perr == nil {
		r.CreatedAt = t
	} else if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		r.CreatedAt = t
	}
	return &r, nil
}
