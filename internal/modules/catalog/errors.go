package catalog

import "errors"

var (
	ErrRequestNotFound = errors.New("service request not found")
	ErrNotPending      = errors.New("only pending requests can be changed")
)
