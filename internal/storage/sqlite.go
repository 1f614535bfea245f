// Package storage provides SQLite-based persistence for sessions and wave results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/topdeck/internal/director"
)

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.topdeck/topdeck.db"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionRecord is the persisted state of a run, enough to resume it.
type SessionRecord struct {
	ID            string
	Seed          int64
	Preset        string
	Source        string // "play", "simulate:<profile>", "ssh"
	NextWave      int
	DefenderLevel int
	TowerLevel    int
	Money         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WaveRecord is a finished wave of a session.
type WaveRecord struct {
	ID        int64
	SessionID string
	director.WaveResult
	Pattern         string
	DifficultyScore float64
	SpawnDelay      float64
	Kills           int
	Leaks           int
	CreatedAt       time.Time
}

// Stats aggregates every stored wave.
type Stats struct {
	Sessions      int
	Waves         int
	HighestWave   int
	AvgHealthLoss float64 // lost / starting, averaged over waves
	AvgDuration   float64
	LastPlayed    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT 'normal',
			source TEXT NOT NULL DEFAULT '',
			next_wave INTEGER NOT NULL DEFAULT 1,
			defender_level INTEGER NOT NULL DEFAULT 0,
			tower_level INTEGER NOT NULL DEFAULT 0,
			money INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS wave_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			wave_index INTEGER NOT NULL,
			starting_health INTEGER NOT NULL,
			health_lost INTEGER NOT NULL,
			combat_duration REAL NOT NULL,
			enemies_spawned INTEGER NOT NULL,
			elites_spawned INTEGER NOT NULL DEFAULT 0,
			mini_bosses_spawned INTEGER NOT NULL DEFAULT 0,
			pattern TEXT NOT NULL DEFAULT '',
			difficulty_score REAL NOT NULL DEFAULT 0,
			spawn_delay REAL NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			leaks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(session_id, wave_index)
		);
		CREATE INDEX IF NOT EXISTS idx_wave_results_session ON wave_results(session_id, wave_index);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession inserts or updates a session.
func (s *Store) SaveSession(rec SessionRecord) error {
	if rec.ID == "" {
		return errors.New("storage: session id is empty")
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, seed, preset, source, next_wave, defender_level, tower_level, money)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			next_wave = excluded.next_wave,
			defender_level = excluded.defender_level,
			tower_level = excluded.tower_level,
			money = excluded.money,
			updated_at = CURRENT_TIMESTAMP`,
		rec.ID, rec.Seed, rec.Preset, rec.Source, rec.NextWave,
		rec.DefenderLevel, rec.TowerLevel, rec.Money,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

const sessionColumns = `id, seed, preset, source, next_wave, defender_level, tower_level, money, created_at, updated_at`

// Session finds a session by id or unique id prefix. The prefix is matched
// literally. Returns nil without error when nothing matches.
func (s *Store) Session(idOrPrefix string) (*SessionRecord, error) {
	if idOrPrefix == "" {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT `+sessionColumns+` FROM sessions WHERE substr(id, 1, length(?)) = ? ORDER BY id LIMIT 2`,
		idOrPrefix, idOrPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	defer rows.Close()

	recs, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}
	switch {
	case len(recs) == 0:
		return nil, nil
	case len(recs) > 1 && recs[0].ID != idOrPrefix:
		return nil, fmt.Errorf("storage: session prefix %q is ambiguous", idOrPrefix)
	}
	return &recs[0], nil
}

// RecentSessions returns the most recently updated sessions.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY updated_at DESC, created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// DeleteSession removes a session and its wave results.
func (s *Store) DeleteSession(id string) error {
	if _, err := s.db.Exec("DELETE FROM wave_results WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete wave results: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	return nil
}

func scanSessions(rows *sql.Rows) ([]SessionRecord, error) {
	var recs []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var createdAt, updatedAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Preset, &r.Source, &r.NextWave,
			&r.DefenderLevel, &r.TowerLevel, &r.Money, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = parseTime(updatedAt)
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return recs, nil
}

// SaveWaveResult records a finished wave. Saving the same wave of a session
// twice replaces the earlier record.
// Returns the ID of the inserted record.
func (s *Store) SaveWaveResult(rec WaveRecord) (int64, error) {
	if rec.WaveIndex <= 0 {
		return 0, fmt.Errorf("storage: invalid wave index %d", rec.WaveIndex)
	}
	res, err := s.db.Exec(
		`INSERT OR REPLACE INTO wave_results
		 (session_id, wave_index, starting_health, health_lost, combat_duration, enemies_spawned,
		  elites_spawned, mini_bosses_spawned, pattern, difficulty_score, spawn_delay, kills, leaks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.WaveIndex, rec.StartingHealth, rec.HealthLost, rec.CombatDuration,
		rec.EnemiesSpawned, rec.ElitesSpawned, rec.MiniBossesSpawned, rec.Pattern,
		rec.DifficultyScore, rec.SpawnDelay, rec.Kills, rec.Leaks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save wave result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// WaveRecords returns every wave of a session in wave order.
func (s *Store) WaveRecords(sessionID string) ([]WaveRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, wave_index, starting_health, health_lost, combat_duration,
		        enemies_spawned, elites_spawned, mini_bosses_spawned, pattern,
		        difficulty_score, spawn_delay, kills, leaks, created_at
		 FROM wave_results
		 WHERE session_id = ?
		 ORDER BY wave_index ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query wave results: %w", err)
	}
	defer rows.Close()

	var recs []WaveRecord
	for rows.Next() {
		var r WaveRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.WaveIndex, &r.StartingHealth, &r.HealthLost,
			&r.CombatDuration, &r.EnemiesSpawned, &r.ElitesSpawned, &r.MiniBossesSpawned,
			&r.Pattern, &r.DifficultyScore, &r.SpawnDelay, &r.Kills, &r.Leaks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return recs, nil
}

// WaveResults returns a session's results in the form the director records,
// ready for wave.Session.Restore.
func (s *Store) WaveResults(sessionID string) ([]director.WaveResult, error) {
	recs, err := s.WaveRecords(sessionID)
	if err != nil {
		return nil, err
	}
	results := make([]director.WaveResult, len(recs))
	for i, r := range recs {
		results[i] = r.WaveResult
	}
	return results, nil
}

// Stats retrieves aggregated statistics over all sessions.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&stats.Sessions); err != nil {
		return nil, fmt.Errorf("storage: cannot count sessions: %w", err)
	}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(wave_index), 0),
		        COALESCE(AVG(CAST(health_lost AS REAL) / MAX(starting_health, 1)), 0),
		        COALESCE(AVG(combat_duration), 0), MAX(created_at)
		 FROM wave_results`,
	).Scan(&stats.Waves, &stats.HighestWave, &stats.AvgHealthLoss, &stats.AvgDuration, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get wave stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
