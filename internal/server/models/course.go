package models

import "time"

type Course struct {
	ID          int64     `json:"course_id"`
	Name        string    `json:"course_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
