package collision

import "errors"

var (
	ErrAlreadyInPartition = errors.New("collision: collider already in partition")
	ErrNotInPartition     = errors.New("collision: collider not in partition")
	ErrNoShape            = errors.New("collision: collider has no shape")
	ErrNilCollider        = errors.New("collision: collider is nil")
	ErrInvalidShape       = errors.New("collision: shape has negative size")
)
