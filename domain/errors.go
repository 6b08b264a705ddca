package domain

import "errors"

var (
	// ErrEmptyName rejects an item whose name is blank after trimming.
	ErrEmptyName = errors.New("item name must not be empty")
	// ErrEmptyAddedBy rejects an item without an author.
	ErrEmptyAddedBy = errors.New("addedBy must not be empty")
	// ErrItemNotFound indicates the referenced item is not in the draft.
	ErrItemNotFound = errors.New("item not found in draft")
	// ErrConcurrencyConflict indicates that the underlying storage rejected
	// a write because another editor persisted a newer draft first.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)
