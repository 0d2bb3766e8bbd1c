// Package showcase implements the display routines of the dashboard: the
// page router's three pages and the render pass they run in.
package showcase

import (
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// Service runs the display routines. It holds no per-pass state and is safe
// for concurrent use.
type Service struct {
	validate *validator.Validate
	locale   language.Tag
}

// NewService constructs the display routines using locale for number
// formatting.
func NewService(locale language.Tag) *Service {
	return &Service{validate: validator.New(), locale: locale}
}
