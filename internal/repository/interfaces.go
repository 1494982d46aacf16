package repository

import (
	"context"

	"github.com/baharkarakas/users-admin/internal/models"
)

// Users persists the whole user collection. Save is compare-and-set against
// c.Version and returns the collection with its new version.
type Users interface {
	Load(ctx context.Context) (models.Collection, error)
	Save(ctx context.Context, c models.Collection) (models.Collection, error)
}
