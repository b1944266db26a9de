package model

import (
	"fmt"
	"strings"
	"time"
)

// List is a named collection of items with its own done flag.
type List struct {
	ID          int64      `json:"id" yaml:"id"`
	Created     Timestamp  `json:"created" yaml:"created"`
	LastRenamed *Timestamp `json:"lastRenamed" yaml:"lastRenamed"`
	LastUpdated *Timestamp `json:"lastUpdated" yaml:"lastUpdated"`
	Name        string     `json:"name" yaml:"name"`
	Done        bool       `json:"done" yaml:"done"`
	Items       []Item     `json:"items" yaml:"items"`
}

// Lists is the whole persisted document. Every method returns a new value.
type Lists []List

// Create appends a new pending list with no items.
func (ls Lists) Create(name string, now time.Time) (Lists, List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ls, List{}, ErrBlank
	}
	l := List{
		ID:      nextID(now, ls.has),
		Created: At(now),
		Name:    name,
		Items:   []Item{},
	}
	out := append(ls.clone(), l)
	return out, l, nil
}

// Rename changes a list's name and stamps lastRenamed. Same name is a no-op.
func (ls Lists) Rename(id int64, name string, now time.Time) (Lists, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ls, ErrBlank
	}
	i := ls.index(id)
	if i < 0 {
		return ls, fmt.Errorf("list %d: %w", id, ErrListNotFound)
	}
	if ls[i].Name == name {
		return ls, nil
	}
	out := ls.clone()
	out[i].Name = name
	out[i].LastRenamed = Ptr(now)
	return out, nil
}

// Delete removes exactly the list with the given id.
func (ls Lists) Delete(id int64) (Lists, error) {
	i := ls.index(id)
	if i < 0 {
		return ls, fmt.Errorf("list %d: %w", id, ErrListNotFound)
	}
	out := ls.clone()
	return append(out[:i], out[i+1:]...), nil
}

// Toggle flips one list's done flag.
func (ls Lists) Toggle(id int64, now time.Time) (Lists, error) {
	i := ls.index(id)
	if i < 0 {
		return ls, fmt.Errorf("list %d: %w", id, ErrListNotFound)
	}
	out := ls.clone()
	out[i].Done = !out[i].Done
	out[i].LastUpdated = Ptr(now)
	return out, nil
}

// ToggleAll flips every list individually.
func (ls Lists) ToggleAll(now time.Time) Lists {
	out := ls.clone()
	for i := range out {
		out[i].Done = !out[i].Done
		out[i].LastUpdated = Ptr(now)
	}
	return out
}

// ClearDone drops every done list and reports how many were removed.
func (ls Lists) ClearDone() (Lists, int) {
	out := make(Lists, 0, len(ls))
	for _, l := range ls {
		if !l.Done {
			out = append(out, l)
		}
	}
	return out, len(ls) - len(out)
}

// Update applies fn to one list and stamps its lastUpdated. Item mutations go
// through here.
func (ls Lists) Update(id int64, now time.Time, fn func(List) (List, error)) (Lists, error) {
	i := ls.index(id)
	if i < 0 {
		return ls, fmt.Errorf("list %d: %w", id, ErrListNotFound)
	}
	l, err := fn(ls[i])
	if err != nil {
		return ls, err
	}
	out := ls.clone()
	l.LastUpdated = Ptr(now)
	out[i] = l
	return out, nil
}

// Find looks a list up by id.
func (ls Lists) Find(id int64) (List, bool) {
	i := ls.index(id)
	if i < 0 {
		return List{}, false
	}
	return ls[i], true
}

// Counts tallies the lists' own done flags, not their items.
func (ls Lists) Counts() Counts {
	var c Counts
	for _, l := range ls {
		c.add(l.Done)
	}
	return c
}

// Normalize fills in missing item slices and checks id uniqueness.
func (ls Lists) Normalize() (Lists, error) {
	out := ls.clone()
	seen := make(map[int64]bool, len(out))
	for i := range out {
		if seen[out[i].ID] {
			return ls, fmt.Errorf("list %d: %w", out[i].ID, ErrDuplicateID)
		}
		seen[out[i].ID] = true
		if out[i].Items == nil {
			out[i].Items = []Item{}
		}
		items := make(map[int64]bool, len(out[i].Items))
		for _, it := range out[i].Items {
			if items[it.ID] {
				return ls, fmt.Errorf("list %d item %d: %w", out[i].ID, it.ID, ErrDuplicateID)
			}
			items[it.ID] = true
		}
	}
	return out, nil
}

func (ls Lists) index(id int64) int {
	for i, l := range ls {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (ls Lists) has(id int64) bool { return ls.index(id) >= 0 }

func (ls Lists) clone() Lists {
	out := make(Lists, len(ls))
	copy(out, ls)
	return out
}
