package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database holding the interaction log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database in dataDir and runs pending migrations.
// Pass ":memory:" as dataDir for an in-memory database (used by tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "hirekit.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	// Set busy timeout so concurrent access waits briefly instead of failing immediately.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate reads embedded SQL migration files and applies any that haven't been run yet.
func (s *Store) migrate() error {
	// Ensure schema_version table exists (bootstrap).
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort by filename to guarantee ascending order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return err
		}

		// Check if already applied.
		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}

		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

func parseMigrationVersion(filename string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, fmt.Errorf("parsing migration version from %q: %w", filename, err)
	}
	return version, nil
}

// AppliedMigrations returns the list of applied migration versions in ascending order.
func (s *Store) AppliedMigrations() ([]int, error) {
	rows, err := s.db.Query("SELECT version FROM schema_version ORDER BY version ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// --- Interactions ---

const interactionColumns = `id, created_at, intent, language, user_query, response, status, duration_ms, result_count`

// SaveInteraction inserts i. An empty status is stored as "completed".
func (s *Store) SaveInteraction(i Interaction) error {
	status := i.Status
	if status == "" {
		status = "completed"
	}
	lang := i.Language
	if lang == "" {
		lang = "en"
	}
	_, err := s.db.Exec(`
		INSERT INTO interactions (`+interactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.CreatedAt.UTC().Format(time.RFC3339Nano), i.Intent, lang, i.UserQuery,
		i.Response, status, i.DurationMs, i.ResultCount,
	)
	if err != nil {
		return fmt.Errorf("saving interaction %s: %w", i.ID, err)
	}
	return nil
}

func (s *Store) GetInteraction(id string) (Interaction, error) {
	row := s.db.QueryRow(`SELECT `+interactionColumns+` FROM interactions WHERE id = ?`, id)
	i, err := scanInteraction(row)
	if err == sql.ErrNoRows {
		return Interaction{}, ErrNotFound
	}
	return i, err
}

// ListInteractions returns interactions newest first. An empty intent
// matches every intent.
func (s *Store) ListInteractions(intent string, limit, offset int) ([]Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM interactions`
	var args []any
	if intent != "" {
		query += ` WHERE intent = ?`
		args = append(args, intent)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}
	defer rows.Close()

	out := []Interaction{}
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// GetRecentInteractions returns the newest limit interactions.
func (s *Store) GetRecentInteractions(limit int) ([]Interaction, error) {
	return s.ListInteractions("", limit, 0)
}

func (s *Store) DeleteInteraction(id string) error {
	res, err := s.db.Exec(`DELETE FROM interactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting interaction %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IntentCounts returns the number of stored interactions per intent.
func (s *Store) IntentCounts() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT intent, COUNT(*) FROM interactions GROUP BY intent`)
	if err != nil {
		return nil, fmt.Errorf("counting interactions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var intent string
		var n int
		if err := rows.Scan(&intent, &n); err != nil {
			return nil, err
		}
		counts[intent] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInteraction(sc scanner) (Interaction, error) {
	var i Interaction
	var createdAt string
	err := sc.Scan(&i.ID, &createdAt, &i.Intent, &i.Language, &i.UserQuery, &i.Response, &i.Status, &i.DurationMs, &i.ResultCount)
	if err != nil {
		return Interaction{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Interaction{}, fmt.Errorf("parsing created_at: %w", err)
	}
	i.CreatedAt = t
	return i, nil
}
