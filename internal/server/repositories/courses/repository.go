// Package courses persists the course catalogue.
package courses

import (
	"context"

	"github.com/courseboard/server/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Course, error)
}
