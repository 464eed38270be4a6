// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested client, draft, or session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateHandle indicates a registration with an already-used handle.
	ErrDuplicateHandle = errors.New("handle already registered")

	// ErrEmptyName indicates a required text field was missing at a save or
	// finalize boundary.
	ErrEmptyName = errors.New("required name is empty")

	// ErrAuthRequired indicates the exporter has no valid token and the user
	// must complete the out-of-band authorization step.
	ErrAuthRequired = errors.New("export authorization required")

	// ErrExportDisabled indicates Drive export is not configured on this
	// instance.
	ErrExportDisabled = errors.New("drive export is disabled")
)
