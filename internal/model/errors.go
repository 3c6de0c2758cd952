package model

import "errors"

// ErrNotFound indicates a bookmark id is not in the collection.
var ErrNotFound = errors.New("website not found")
