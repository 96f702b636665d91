package forms

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

type termEntity struct {
	term models.Term
}

func (e *termEntity) set(field, value string) error {
	switch field {
	case "title":
		e.term.Title = strings.TrimSpace(value)
	case "content":
		e.term.Content = value
	case "display_order":
		n, err := parseInt(field, strings.TrimSpace(value))
		if err != nil {
			return err
		}
		e.term.DisplayOrder = n
	default:
		return invalid(field, "unknown field")
	}
	return nil
}

func (e *termEntity) fields() []Field {
	return []Field{
		{"title", e.term.Title},
		{"content", e.term.Content},
		{"display_order", strconv.Itoa(e.term.DisplayOrder)},
	}
}

func (e *termEntity) validate() error {
	if e.term.Title == "" {
		return invalid("title", "is required")
	}
	if strings.TrimSpace(e.term.Content) == "" {
		return invalid("content", "is required")
	}
	return nil
}

func (e *termEntity) payload([]string, bool) any {
	return e.term
}
