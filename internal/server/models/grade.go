package models

import "time"

// Grade is a teacher's mark (0..100) with optional feedback. TeacherName
// is joined in for display.
type Grade struct {
	ID          int64     `json:"grade_id"`
	WorkID      int64     `json:"work_id"`
	TeacherID   int64     `json:"teacher_id"`
	Grade       int       `json:"grade"`
	Feedback    string    `json:"feedback"`
	CreatedAt   time.Time `json:"created_at"`
	TeacherName string    `json:"teacher_name,omitempty"`
}
