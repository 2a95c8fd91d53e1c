package usage

import "errors"

// ErrLimitReached indicates the user exceeded their generation quota.
var ErrLimitReached = errors.New("limit reached")
