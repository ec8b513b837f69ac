package models

import "time"

// WorkFile describes server-side metadata for an uploaded file attached to
// a work. The bytes themselves live in object storage; FilePath is the
// stored object name used to retrieve them.
type WorkFile struct {
	ID         int64     `json:"file_id"`
	WorkID     int64     `json:"work_id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}
