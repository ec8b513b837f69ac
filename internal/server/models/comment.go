package models

import "time"

// Comment is a user remark on a work. UserName is joined in for display
// and not persisted on the comments table.
type Comment struct {
	ID        int64     `json:"comment_id"`
	WorkID    int64     `json:"work_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"comment_text"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name,omitempty"`
}
