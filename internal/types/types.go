package types

import "time"

// Transcript represents one cleaned subtitle transcript of the current session
type Transcript struct {
	ID        string    `json:"transcript_id"`
	Name      string    `json:"name"`
	TrackPath string    `json:"track_path"`
	Text      string    `json:"text"`
	WordCount int       `json:"word_count"`
	DriveURL  string    `json:"gdrive_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
