// Package model holds the to-do document: lists, their items, and the pure
// transformations applied to them. Nothing here touches storage.
package model

import (
	"errors"
	"time"
)

var (
	// ErrBlank rejects names and texts that are empty or whitespace only.
	ErrBlank = errors.New("text cannot be blank")
	// ErrListNotFound is returned for an unknown list id.
	ErrListNotFound = errors.New("list not found")
	// ErrItemNotFound is returned for an unknown item id.
	ErrItemNotFound = errors.New("item not found")
	// ErrDuplicateID is returned when a document repeats an id in one container.
	ErrDuplicateID = errors.New("duplicate id")
)

// Counts is the all/pending/done tally shown in footers.
type Counts struct {
	All, Pending, Done int
}

func (c *Counts) add(done bool) {
	c.All++
	if done {
		c.Done++
	} else {
		c.Pending++
	}
}

// nextID derives an id from the creation time in milliseconds and bumps it
// until taken reports it free.
func nextID(now time.Time, taken func(int64) bool) int64 {
	id := now.UnixMilli()
	for taken(id) {
		id++
	}
	return id
}
