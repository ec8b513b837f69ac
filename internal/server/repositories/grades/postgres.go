package grades

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courseboard/server/internal/common"
	"github.com/courseboard/server/internal/dbx"
	"github.com/courseboard/server/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, grade *models.Grade) (*models.Grade, error) {

	query :=
		`INSERT INTO grades (work_id, teacher_id, grade, feedback)
		 VALUES ($1, $2, $3, $4)
		 RETURNING grade_id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		grade.WorkID, grade.TeacherID, grade.Grade, grade.Feedback).Scan(&grade.ID, &grade.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return grade, nil
}

func (r *PostgresRepository) ListByWork(ctx context.Context, workID int64) ([]*models.Grade, error) {
	query :=
		`SELECT g.grade_id, g.work_id, g.teacher_id, g.grade, g.feedback, g.created_at, COALESCE(u.user_name, '')
		 FROM grades g
		 LEFT JOIN users u ON g.teacher_id = u.user_id
		 WHERE g.work_id = $1
		 ORDER BY g.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Grade
	for rows.Next() {
		var item models.Grade
		if err := rows.Scan(&item.ID, &item.WorkID, &item.TeacherID, &item.Grade, &item.Feedback, &item.CreatedAt, &item.TeacherName); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LatestByWork returns the most recent grade for a work, or
// common.ErrorNotFound when the work is ungraded.
func (r *PostgresRepository) LatestByWork(ctx context.Context, workID int64) (*models.Grade, error) {
	query :=
		`SELECT g.grade_id, g.work_id, g.teacher_id, g.grade, g.feedback, g.created_at, COALESCE(u.user_name, '')
		 FROM grades g
		 LEFT JOIN users u ON g.teacher_id = u.user_id
		 WHERE g.work_id = $1
		 ORDER BY g.created_at DESC
		 LIMIT 1
		 `

	item := &models.Grade{}
	err := r.db.QueryRowContext(ctx, query, workID).
		Scan(&item.ID, &item.WorkID, &item.TeacherID, &item.Grade, &item.Feedback, &item.CreatedAt, &item.TeacherName)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}
