package comments

import (
	"context"
	"fmt"

	"github.com/courseboard/server/internal/dbx"
	"github.com/courseboard/server/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {

	query :=
		`INSERT INTO comments (work_id, user_id, comment_text)
		 VALUES ($1, $2, $3)
		 RETURNING comment_id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.WorkID, comment.UserID, comment.Text).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) ListByWork(ctx context.Context, workID int64) ([]*models.Comment, error) {
	query :=
		`SELECT c.comment_id, c.work_id, c.user_id, c.comment_text, c.created_at, COALESCE(u.user_name, '')
		 FROM comments c
		 LEFT JOIN users u ON c.user_id = u.user_id
		 WHERE c.work_id = $1
		 ORDER BY c.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Comment
	for rows.Next() {
		var item models.Comment
		if err := rows.Scan(&item.ID, &item.WorkID, &item.UserID, &item.Text, &item.CreatedAt, &item.UserName); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
