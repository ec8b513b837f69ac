package workfiles

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

func (r *PostgresRepository) Create(ctx context.Context, file *models.WorkFile) (*models.WorkFile, error) {

	query :=
		`INSERT INTO work_files (work_id, file_name, file_path, file_type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING file_id, uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.WorkID, file.FileName, file.FilePath, file.FileType).Scan(&file.ID, &file.UploadedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) ListByWork(ctx context.Context, workID int64) ([]*models.WorkFile, error) {
	query :=
		`SELECT file_id, work_id, file_name, file_path, file_type, uploaded_at FROM work_files
		 WHERE work_id = $1
		 ORDER BY uploaded_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.WorkFile
	for rows.Next() {
		var item models.WorkFile
		if err := rows.Scan(&item.ID, &item.WorkID, &item.FileName, &item.FilePath, &item.FileType, &item.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByStoredName(ctx context.Context, storedName string) (*models.WorkFile, error) {
	query :=
		`SELECT file_id, work_id, file_name, file_path, file_type, uploaded_at FROM work_files
		 WHERE file_path = $1
		 `

	item := &models.WorkFile{}
	err := r.db.QueryRowContext(ctx, query, storedName).
		Scan(&item.ID, &item.WorkID, &item.FileName, &item.FilePath, &item.FileType, &item.UploadedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}
