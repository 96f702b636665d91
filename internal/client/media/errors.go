package media

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

var (
	ErrIndexOutOfRange = errors.New("image index out of range")
	ErrLimitReached    = errors.New("image limit reached")
)

// UploadError is returned by Finalize when staged images could not be
// uploaded. EntityID names the entity, which exists on the server.
type UploadError struct {
	EntityID string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload images for %s: %v", e.EntityID, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// OrphanError is returned by Discard when a speculatively created entity
// could not be deleted.
type OrphanError struct {
	Kind     models.Kind
	EntityID string
	Err      error
}

func (e *OrphanError) Error() string {
	return fmt.Sprintf("delete unsaved %s %s: %v", e.Kind.Singular(), e.EntityID, e.Err)
}

func (e *OrphanError) Unwrap() error { return e.Err }
