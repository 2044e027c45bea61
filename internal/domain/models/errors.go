package models

import "errors"

// ErrValidation indicates rejected user input: an empty product name,
// a negative quantity or price, a non-positive billing quantity, or a
// billing quantity exceeding available stock.
var ErrValidation = errors.New("validation failed")

// ErrNotFound indicates a referenced product or bill id does not exist.
var ErrNotFound = errors.New("not found")

// ErrCorruptData indicates a persisted store is present but cannot be
// decoded into the expected shape.
var ErrCorruptData = errors.New("corrupt data")

// ErrStorage indicates the environment made a persisted store unreadable or
// unwritable (permissions, disk, connectivity).
var ErrStorage = errors.New("storage failure")
