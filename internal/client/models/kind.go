// Package models defines the rental entities managed by the console and
// their wire representation.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names an entity collection on the remote API.
type Kind string

const (
	KindCar    Kind = "cars"
	KindDriver Kind = "drivers"
	KindTerm   Kind = "terms"
)

var ErrUnknownKind = errors.New("unknown entity kind")

// Kinds lists every collection in tab order.
var Kinds = []Kind{KindCar, KindDriver, KindTerm}

// ParseKind accepts plural or singular names, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cars", "car":
		return KindCar, nil
	case "drivers", "driver":
		return KindDriver, nil
	case "terms", "term":
		return KindTerm, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Singular is the key some API responses wrap a single object in.
func (k Kind) Singular() string {
	return strings.TrimSuffix(string(k), "s")
}

// HasImages reports whether entities of this kind carry a media set.
func (k Kind) HasImages() bool {
	return k == KindCar || k == KindDriver
}

// MaxImages is the media set capacity, 0 meaning unlimited.
func (k Kind) MaxImages() int {
	if k == KindDriver {
		return 1
	}
	return 0
}
