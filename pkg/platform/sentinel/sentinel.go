package sentinel

import "errors"

// Sentinel errors for storage facts. Backends return these (optionally
// wrapped) so the adapter layer can translate them into its silent
// miss/no-op contract without string matching.
//
// These represent factual states about the underlying store, not
// validation failures:
// - ErrNotFound: key does not exist in the backend
// - ErrUnavailable: backend unreachable or out of quota
// - ErrInvalidState: stored value cannot serve the requested operation
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
