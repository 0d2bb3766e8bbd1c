package showcase

import "errors"

var (
	// ErrUnknownPage indicates a navigation value outside the menu.
	ErrUnknownPage = errors.New("showcase: unknown page")
	// ErrUnknownChart indicates a chart type outside the picker options.
	ErrUnknownChart = errors.New("showcase: unknown chart type")
	// ErrInvalidPass indicates a malformed render pass ID.
	ErrInvalidPass = errors.New("showcase: invalid pass id")
)
