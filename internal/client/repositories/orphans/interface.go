package orphans

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

var ErrNotFound = errors.New("orphan not found")

type Repository interface {
	Record(ctx context.Context, o models.Orphan) error
	List(ctx context.Context) ([]models.Orphan, error)
	Resolve(ctx context.Context, kind models.Kind, entityID string) error
	History(ctx context.Context) ([]models.ResolvedOrphan, error)
}
