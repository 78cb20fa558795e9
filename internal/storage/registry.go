package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/codebuildervaibhav/vimeo-transcript/internal/types"
)

// Registry holds the transcripts of the current session in an in-memory
// SQLite database. Nothing survives a restart.
type Registry struct {
	db *sql.DB
}

// NewRegistry creates the session registry
func NewRegistry() (*Registry, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %v", err)
	}

	// Every :memory: connection is its own database, so the pool must stay
	// on a single connection
	db.SetMaxOpenConns(1)

	// Create table if not exists
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS transcripts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		transcript_id TEXT NOT NULL UNIQUE,
		request_name TEXT NOT NULL,
		track_path TEXT NOT NULL,
		content TEXT NOT NULL,
		word_count INTEGER NOT NULL,
		gdrive_url TEXT,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_created_at ON transcripts(created_at);
	CREATE INDEX IF NOT EXISTS idx_request_name ON transcripts(request_name);
	`

	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create table: %v", err)
	}

	return &Registry{db: db}, nil
}

// Save stores a transcript in the registry
func (r *Registry) Save(t *types.Transcript) error {
	query := `
	INSERT INTO transcripts (transcript_id, request_name, track_path, content, word_count, gdrive_url, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, t.ID, t.Name, t.TrackPath, t.Text, t.WordCount,
		t.DriveURL, t.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save transcript: %v", err)
	}

	return nil
}

// Get retrieves a transcript by ID. A missing ID returns (nil, nil).
func (r *Registry) Get(transcriptID string) (*types.Transcript, error) {
	query := `
	SELECT transcript_id, request_name, track_path, content, word_count, gdrive_url, created_at
	FROM transcripts WHERE transcript_id = ?
	`

	row := r.db.QueryRow(query, transcriptID)

	t, err := scanTranscript(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transcript: %v", err)
	}

	return t, nil
}

// List returns the most recent transcripts, newest first
func (r *Registry) List(limit int) ([]*types.Transcript, error) {
	query := `
	SELECT transcript_id, request_name, track_path, content, word_count, gdrive_url, created_at
	FROM transcripts ORDER BY created_at DESC, id DESC LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %v", err)
	}
	defer rows.Close()

	var transcripts []*types.Transcript

	for rows.Next() {
		t, err := scanTranscript(rows.Scan)
		if err != nil {
			continue
		}
		transcripts = append(transcripts, t)
	}

	return transcripts, nil
}

// SetDriveURL records the Google Drive link of a delivered transcript
func (r *Registry) SetDriveURL(transcriptID, url string) error {
	_, err := r.db.Exec(`UPDATE transcripts SET gdrive_url = ? WHERE transcript_id = ?`,
		url, transcriptID)
	if err != nil {
		return fmt.Errorf("failed to update drive url: %v", err)
	}
	return nil
}

// DeleteOlderThan removes transcripts older than maxAge and reports how many
// rows went away
func (r *Registry) DeleteOlderThan(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge).Unix()

	result, err := r.db.Exec(`DELETE FROM transcripts WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune registry: %v", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(deleted), nil
}

// Count returns the number of registered transcripts
func (r *Registry) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM transcripts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transcripts: %v", err)
	}
	return count, nil
}

// Close closes the database connection
func (r *Registry) Close() error {
	return r.db.Close()
}

// scanTranscript reads one registry row through the given scan function
func scanTranscript(scan func(dest ...any) error) (*types.Transcript, error) {
	var (
		t         types.Transcript
		driveURL  sql.NullString
		createdAt int64
	)

	err := scan(&t.ID, &t.Name, &t.TrackPath, &t.Text, &t.WordCount, &driveURL, &createdAt)
	if err != nil {
		return nil, err
	}

	t.DriveURL = driveURL.String
	t.CreatedAt = time.Unix(createdAt, 0)
	return &t, nil
}
