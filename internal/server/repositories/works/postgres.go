package works

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courseboard/server/internal/common"
	"github.com/courseboard/server/internal/dbx"
	"github.com/courseboard/server/internal/server/models"
)

// summaryColumns is the joined row shape shared by listings and details:
// the work itself plus course and student display names.
const summaryColumns = `
	cw.work_id, cw.student_id, cw.course_id, cw.title, cw.description,
	cw.deadline, cw.status, cw.progress, cw.created_at, cw.updated_at,
	COALESCE(c.course_name, ''), COALESCE(u.user_name, '')`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, work *models.Work) (*models.Work, error) {

	query :=
		`INSERT INTO course_works (student_id, course_id, title, description, deadline)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING work_id, status, progress, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		work.StudentID, work.CourseID, work.Title, work.Description, work.Deadline).
		Scan(&work.ID, &work.Status, &work.Progress, &work.CreatedAt, &work.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return work, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.WorkSummary, error) {
	query := `SELECT` + summaryColumns + `
		 FROM course_works cw
		 LEFT JOIN courses c ON cw.course_id = c.course_id
		 LEFT JOIN users u ON cw.student_id = u.user_id
		 ORDER BY cw.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func (r *PostgresRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.WorkSummary, error) {
	query := `SELECT` + summaryColumns + `
		 FROM course_works cw
		 LEFT JOIN courses c ON cw.course_id = c.course_id
		 LEFT JOIN users u ON cw.student_id = u.user_id
		 WHERE cw.student_id = $1
		 ORDER BY cw.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func (r *PostgresRepository) GetSummary(ctx context.Context, id int64) (*models.WorkSummary, error) {
	query := `SELECT` + summaryColumns + `
		 FROM course_works cw
		 LEFT JOIN courses c ON cw.course_id = c.course_id
		 LEFT JOIN users u ON cw.student_id = u.user_id
		 WHERE cw.work_id = $1
		 `

	item := &models.WorkSummary{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.StudentID, &item.CourseID, &item.Title, &item.Description,
		&item.Deadline, &item.Status, &item.Progress, &item.CreatedAt, &item.UpdatedAt,
		&item.CourseName, &item.StudentName)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// UpdateProgress sets progress and bumps updated_at. An unknown work id
// yields common.ErrorNotFound.
func (r *PostgresRepository) UpdateProgress(ctx context.Context, id int64, progress int) (*models.Work, error) {
	query :=
		`UPDATE course_works
		 SET progress = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE work_id = $2
		 RETURNING work_id, student_id, course_id, title, description, deadline, status, progress, created_at, updated_at
		 `

	work := &models.Work{}
	err := r.db.QueryRowContext(ctx, query, progress, id).Scan(
		&work.ID, &work.StudentID, &work.CourseID, &work.Title, &work.Description,
		&work.Deadline, &work.Status, &work.Progress, &work.CreatedAt, &work.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return work, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM course_works WHERE work_id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func scanSummaries(rows *sql.Rows) ([]*models.WorkSummary, error) {
	var result []*models.WorkSummary
	for rows.Next() {
		var item models.WorkSummary
		if err := rows.Scan(
			&item.ID, &item.StudentID, &item.CourseID, &item.Title, &item.Description,
			&item.Deadline, &item.Status, &item.Progress, &item.CreatedAt, &item.UpdatedAt,
			&item.CourseName, &item.StudentName); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
