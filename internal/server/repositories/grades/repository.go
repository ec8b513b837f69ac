// Package grades persists teacher marks for works.
package grades

import (
	"context"

	"github.com/courseboard/server/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, grade *models.Grade) (*models.Grade, error)
	ListByWork(ctx context.Context, workID int64) ([]*models.Grade, error)
	LatestByWork(ctx context.Context, workID int64) (*models.Grade, error)
}
