// Package repository implements persistence over database/sql. Sentinel
// errors defined here let handlers map storage outcomes to HTTP statuses
// without inspecting driver internals.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no rows. Handlers
// translate it into 404 (or 403 for refresh-token checks, where absence
// must be indistinguishable from invalidity).
var ErrNotFound = errors.New("not found")
