package client

import (
	"context"
	"encoding/json"
	"io"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

// Upload is one image file sent to the attachment endpoint.
type Upload struct {
	Name    string
	Content io.Reader
}

// Client is the remote entity API used by the console.
type Client interface {
	List(ctx context.Context, kind models.Kind) ([]json.RawMessage, error)
	Get(ctx context.Context, kind models.Kind, id string) (json.RawMessage, error)
	Create(ctx context.Context, kind models.Kind, payload any) (string, error)
	Update(ctx context.Context, kind models.Kind, id string, payload any) error
	Delete(ctx context.Context, kind models.Kind, id string) error

	// AttachImages uploads files in order and returns the entity's complete
	// image list as stored by the server.
	AttachImages(ctx context.Context, kind models.Kind, id string, files []Upload) ([]string, error)
	// DetachImage removes ref and returns the remaining image list.
	DetachImage(ctx context.Context, kind models.Kind, id string, ref string) ([]string, error)
}
