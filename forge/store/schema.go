package store

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs table: one row per generation or estimate-only run
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    source_name TEXT NOT NULL,
    vertex_count INTEGER NOT NULL DEFAULT 0,
    face_count INTEGER NOT NULL DEFAULT 0,
    detail_level REAL NOT NULL DEFAULT 1.0,
    voxel_size REAL NOT NULL,
    offset REAL NOT NULL DEFAULT 0,
    thickness REAL NOT NULL DEFAULT 0,
    open_bottom BOOLEAN NOT NULL DEFAULT 1,
    fast_mode BOOLEAN NOT NULL DEFAULT 0,
    stage_count INTEGER NOT NULL DEFAULT 0,
    duration_ms REAL NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source_name);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
