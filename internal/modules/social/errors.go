package social

import "errors"

var (
	ErrNotFound        = errors.New("social link not found")
	ErrUnknownPlatform = errors.New("unknown social platform")
)
