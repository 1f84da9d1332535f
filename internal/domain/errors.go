package domain

import "errors"

// Store-level signals. Repositories translate driver failures into these and
// nothing else; the service layer turns them into classified errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidID   = errors.New("malformed identifier")
	ErrInvalidData = errors.New("invalid data")
	ErrDuplicate   = errors.New("duplicate key")
	ErrNotOwner    = errors.New("not the owner")
)
