package models

import "time"

// Work is a single course work owned by a student.
type Work struct {
	ID          int64      `json:"work_id"`
	StudentID   int64      `json:"student_id"`
	CourseID    *int64     `json:"course_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// WorkSummary is a Work joined with its course and student names, the row
// shape returned by listings.
type WorkSummary struct {
	Work
	CourseName  string `json:"course_name"`
	StudentName string `json:"student_name"`
}

// WorkDetails aggregates everything a client needs to render one work:
// the summary row plus files, comments, and the most recent grade (nil
// when the work is ungraded).
type WorkDetails struct {
	WorkSummary
	Files    []*WorkFile `json:"files"`
	Comments []*Comment  `json:"comments"`
	Grade    *Grade      `json:"grade"`
}
