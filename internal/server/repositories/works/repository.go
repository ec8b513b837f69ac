// Package works persists course works and their listings.
package works

import (
	"context"

	"github.com/courseboard/server/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, work *models.Work) (*models.Work, error)
	ListAll(ctx context.Context) ([]*models.WorkSummary, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.WorkSummary, error)
	GetSummary(ctx context.Context, id int64) (*models.WorkSummary, error)
	UpdateProgress(ctx context.Context, id int64, progress int) (*models.Work, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
