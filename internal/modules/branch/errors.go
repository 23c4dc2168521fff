package branch

import "errors"

var (
	ErrMainBranch = errors.New("the main branch cannot be removed or deactivated")
	ErrNotFound   = errors.New("branch not found")
)
