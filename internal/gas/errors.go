package gas

import "errors"

// ErrArenaFull indicates rejection-sampled placement gave up: the arena
// cannot hold another non-overlapping body at the requested radius.
var ErrArenaFull = errors.New("gas: arena too crowded for non-overlapping placement")
