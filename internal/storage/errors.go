// ABOUTME: Sentinel errors for the training catalog store.
// ABOUTME: Callers match them with errors.Is; causes are wrapped alongside.
package storage

import "errors"

var (
	// ErrInitialization marks a failed Initialize. The transaction was rolled back.
	ErrInitialization = errors.New("initialization failed")

	// ErrMaintenance marks a failed deduplication pass.
	ErrMaintenance = errors.New("maintenance failed")

	// ErrNotInitialized is returned by reads issued before Initialize succeeded.
	ErrNotInitialized = errors.New("store not initialized")
)
