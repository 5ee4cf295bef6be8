package domain

import "errors"

// ErrNotFound indicates that a referenced record does not exist locally.
var ErrNotFound = errors.New("not found")

// ErrDuplicateTagName indicates a tag insert collided with an existing name.
var ErrDuplicateTagName = errors.New("tag name already exists")
