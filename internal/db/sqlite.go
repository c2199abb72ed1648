package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/db/models"
)

// PersistenceError reports an underlying storage failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type Database struct {
	db *sql.DB
}

func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate() error {
	// summaries has deliberately no UNIQUE(video_id, language): the
	// one-record-per-key invariant is upheld by UpsertSummary.
	schema := `
	CREATE TABLE IF NOT EXISTS summaries (
		id TEXT PRIMARY KEY,
		video_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		language TEXT NOT NULL,
		mode TEXT NOT NULL DEFAULT 'detailed',
		source TEXT NOT NULL DEFAULT 'captioned',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_summaries_key ON summaries(video_id, language);
	CREATE INDEX IF NOT EXISTS idx_summaries_updated ON summaries(updated_at);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

const summaryColumns = "id, video_id, title, content, language, mode, source, created_at, updated_at"

func scanSummary(row interface{ Scan(...interface{}) error }) (*models.Summary, error) {
	s := &models.Summary{}
	err := row.Scan(&s.ID, &s.VideoID, &s.Title, &s.Content, &s.Language, &s.Mode,
		&s.Source, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// FindSummary returns the summary for (videoID, language), or nil when none
// exists. When duplicates exist (concurrent upsert race), the most recently
// updated record wins.
func (d *Database) FindSummary(videoID, language string) (*models.Summary, error) {
	s, err := scanSummary(d.db.QueryRow(
		"SELECT "+summaryColumns+" FROM summaries WHERE video_id = ? AND language = ? ORDER BY updated_at DESC LIMIT 1",
		videoID, language,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "find summary", Err: err}
	}
	return s, nil
}

// UpsertSummary updates the record for (videoID, language) in place, or
// inserts a new one. Returns the post-write record.
func (d *Database) UpsertSummary(videoID, language, title, content, mode, source string) (*models.Summary, error) {
	now := time.Now()

	existing, err := d.FindSummary(videoID, language)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		_, err = d.db.Exec(
			"UPDATE summaries SET title = ?, content = ?, mode = ?, source = ?, updated_at = ? WHERE id = ?",
			title, content, mode, source, now, existing.ID,
		)
		if err != nil {
			return nil, &PersistenceError{Op: "update summary", Err: err}
		}
		existing.Title = title
		existing.Content = content
		existing.Mode = mode
		existing.Source = source
		existing.UpdatedAt = now
		return existing, nil
	}

	s := &models.Summary{
		ID:        uuid.New().String(),
		VideoID:   videoID,
		Title:     title,
		Content:   content,
		Language:  language,
		Mode:      mode,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = d.db.Exec(
		"INSERT INTO summaries (id, video_id, title, content, language, mode, source, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.ID, s.VideoID, s.Title, s.Content, s.Language, s.Mode, s.Source, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "insert summary", Err: err}
	}
	return s, nil
}

// ListSummaries returns summaries ordered by recency.
func (d *Database) ListSummaries(limit int) ([]*models.Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(
		"SELECT "+summaryColumns+" FROM summaries ORDER BY updated_at DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "list summaries", Err: err}
	}
	defer rows.Close()

	summaries := []*models.Summary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, &PersistenceError{Op: "scan summary", Err: err}
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetSummary returns one summary by ID, or nil when absent.
func (d *Database) GetSummary(id string) (*models.Summary, error) {
	s, err := scanSummary(d.db.QueryRow(
		"SELECT "+summaryColumns+" FROM summaries WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get summary", Err: err}
	}
	return s, nil
}

// GetSetting returns a setting value by key, or defaultVal if not found
func (d *Database) GetSetting(key, defaultVal string) string {
	var val string
	err := d.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&val)
	if err != nil {
		return defaultVal
	}
	return val
}

// SetSetting upserts a setting
func (d *Database) SetSetting(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP`,
		key, value, value,
	)
	return err
}

// GetAllSettings returns all settings as a map
func (d *Database) GetAllSettings() (map[string]string, error) {
	rows, err := d.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}
