// Package comments persists user remarks on works.
package comments

import (
	"context"

	"github.com/courseboard/server/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	ListByWork(ctx context.Context, workID int64) ([]*models.Comment, error)
}
