package docstore

import "errors"

var (
	ErrStoreUnavailable = errors.New("document store unavailable")
	ErrIndexWrite       = errors.New("index write failed")
	ErrIndexQuery       = errors.New("index query failed")
)
