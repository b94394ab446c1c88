package progress

import "errors"

// ErrInvalidUpdate indicates an update with an unknown action or negative XP.
var ErrInvalidUpdate = errors.New("invalid progress update")
