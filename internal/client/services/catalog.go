package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/repositories/orphans"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
)

// CatalogService lists and removes entities and manages the orphan ledger.
type CatalogService interface {
	List(ctx context.Context, kind models.Kind) ([]models.Record, error)
	Get(ctx context.Context, kind models.Kind, id string) (models.Record, error)
	Delete(ctx context.Context, kind models.Kind, id string) error
	Orphans(ctx context.Context) ([]models.Orphan, error)
	Purged(ctx context.Context) ([]models.ResolvedOrphan, error)
	// PurgeOrphan retries the delete of a recorded orphan and clears its
	// ledger row on success. An entity the server no longer knows counts as
	// deleted.
	PurgeOrphan(ctx context.Context, kind models.Kind, id string) error
}

type catalogService struct {
	client  client.Client
	orphans orphans.Repository
	log     logging.Logger
}

func NewCatalogService(c client.Client, o orphans.Repository, log logging.Logger) CatalogService {
	return &catalogService{client: c, orphans: o, log: log}
}

func (s *catalogService) List(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	raw, err := s.client.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	result := make([]models.Record, 0, len(raw))
	for _, item := range raw {
		rec, err := models.DecodeRecord(kind, item)
		if err != nil {
			s.log.Warn(ctx, "skipping undecodable entity", "kind", kind, "error", err)
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func (s *catalogService) Get(ctx context.Context, kind models.Kind, id string) (models.Record, error) {
	raw, err := s.client.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	rec, err := models.DecodeRecord(kind, raw)
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", kind.Singular(), id, err)
	}
	if rec.GetID() == "" {
		return nil, fmt.Errorf("get %s %s: %w: no id", kind.Singular(), id, client.ErrMalformedResponse)
	}
	return rec, nil
}

func (s *catalogService) Delete(ctx context.Context, kind models.Kind, id string) error {
	if err := s.client.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.log.Info(ctx, "entity deleted", "kind", kind, "id", id)
	return nil
}

func (s *catalogService) Orphans(ctx context.Context) ([]models.Orphan, error) {
	return s.orphans.List(ctx)
}

func (s *catalogService) Purged(ctx context.Context) ([]models.ResolvedOrphan, error) {
	return s.orphans.History(ctx)
}

func (s *catalogService) PurgeOrphan(ctx context.Context, kind models.Kind, id string) error {
	list, err := s.orphans.List(ctx)
	if err != nil {
		return err
	}
	if !hasOrphan(list, kind, id) {
		return fmt.Errorf("%w: %s/%s", orphans.ErrNotFound, kind, id)
	}

	if err := s.client.Delete(ctx, kind, id); err != nil && !isNotFound(err) {
		return err
	}

	if err := s.orphans.Resolve(ctx, kind, id); err != nil {
		return err
	}
	s.log.Info(ctx, "orphan purged", "kind", kind, "id", id)
	return nil
}

func hasOrphan(list []models.Orphan, kind models.Kind, id string) bool {
	for _, o := range list {
		if o.Kind == kind && o.EntityID == id {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	var rej *client.RejectionError
	return errors.As(err, &rej) && rej.StatusCode == http.StatusNotFound
}
