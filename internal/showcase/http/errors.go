package showcasehttp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rksiitd1/amazing-dashboard/internal/dataset"
	"github.com/rksiitd1/amazing-dashboard/internal/platform/httpx"
	"github.com/rksiitd1/amazing-dashboard/internal/showcase"
)

type validationError struct {
	field string
}

func (v validationError) Error() string {
	return fmt.Sprintf("invalid %s", v.field)
}

// classify tags domain errors with the httpx sentinel that decides their
// status code.
func classify(err error) error {
	var vErr validationError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, showcase.ErrUnknownPage):
		return fmt.Errorf("%w: %w", httpx.ErrNotFound, err)
	case errors.Is(err, showcase.ErrUnknownChart),
		errors.Is(err, showcase.ErrInvalidPass),
		errors.As(err, &vErr):
		return fmt.Errorf("%w: %w", httpx.ErrValidation, err)
	case errors.Is(err, dataset.ErrEmptyTable),
		errors.Is(err, dataset.ErrMalformed),
		errors.Is(err, dataset.ErrUnsupportedFormat),
		errors.Is(err, dataset.ErrNoSuchColumn),
		errors.Is(err, dataset.ErrNotNumeric):
		return fmt.Errorf("%w: %w", httpx.ErrUnprocessable, err)
	}
	return err
}

// statusOf is the response status for a domain error.
func statusOf(err error) int {
	return httpx.StatusOf(classify(err))
}

// message is the text of the error block shown on a page.
func message(err error) string {
	switch status := statusOf(err); {
	case status == http.StatusRequestEntityTooLarge:
		return "The uploaded file is too large."
	case status >= http.StatusInternalServerError:
		return "Something went wrong while rendering this page."
	}
	return err.Error()
}
