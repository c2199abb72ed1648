package models

import "time"

// Summary is a persisted video summary. At most one record exists per
// (VideoID, Language) pair, upheld by upsert semantics rather than a
// uniqueness constraint.
type Summary struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	Mode      string    `json:"mode"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
