package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/forms"
	"github.com/dmitrijs2005/rentadmin/internal/client/media"
)

var (
	ErrFormOpen = errors.New("a form is open, submit or cancel it first")
	ErrNoForm   = errors.New("no form is open")
)

// describe renders err as the single line shown to the user.
func describe(err error) string {
	var (
		ve  *forms.ValidationError
		ue  *media.UploadError
		oe  *media.OrphanError
		rej *client.RejectionError
	)

	switch {
	case errors.As(err, &ve):
		return fmt.Sprintf("invalid %s: %s", ve.Field, ve.Message)
	case errors.As(err, &oe):
		if _, joined := err.(interface{ Unwrap() []error }); joined {
			return oneLine(err) + "; the orphan ledger could not record it"
		}
		return fmt.Sprintf("%v; recorded in the orphan ledger, run 'purge %s %s' to retry", oe, oe.Kind, oe.EntityID)
	case errors.As(err, &ue):
		return fmt.Sprintf("entity %s was saved without its images (%v); submit again to retry or cancel to discard it",
			ue.EntityID, ue.Err)
	case errors.Is(err, client.ErrUnauthorized):
		return "the server rejected the admin password"
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Sprintf("server unavailable: %v", err)
	case errors.As(err, &rej) && rej.Message != "":
		return rej.Message
	}
	return oneLine(err)
}

func oneLine(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
