// Package workfiles persists metadata for uploaded files; the bytes live
// in object storage.
package workfiles

import (
	"context"

	"github.com/courseboard/server/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.WorkFile) (*models.WorkFile, error)
	ListByWork(ctx context.Context, workID int64) ([]*models.WorkFile, error)
	GetByStoredName(ctx context.Context, storedName string) (*models.WorkFile, error)
}
