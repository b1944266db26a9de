package model

import (
	"fmt"
	"strings"
	"time"
)

// Item is a single to-do entry inside a List.
type Item struct {
	ID          int64      `json:"id" yaml:"id"`
	Created     Timestamp  `json:"created" yaml:"created"`
	LastUpdated *Timestamp `json:"lastUpdated" yaml:"lastUpdated"`
	Text        string     `json:"text" yaml:"text"`
	Done        bool       `json:"done" yaml:"done"`
}

// AddItem appends a pending item. The text is trimmed; blank text is rejected.
func (l List) AddItem(text string, now time.Time) (List, Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return l, Item{}, ErrBlank
	}
	it := Item{
		ID:      nextID(now, l.hasItem),
		Created: At(now),
		Text:    text,
	}
	out := l.clone()
	out.Items = append(out.Items, it)
	return out, it, nil
}

// EditItem replaces an item's text. Unchanged text leaves the list as is.
func (l List) EditItem(id int64, text string, now time.Time) (List, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return l, ErrBlank
	}
	i := l.itemIndex(id)
	if i < 0 {
		return l, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}
	if l.Items[i].Text == text {
		return l, nil
	}
	out := l.clone()
	out.Items[i].Text = text
	out.Items[i].LastUpdated = Ptr(now)
	return out, nil
}

// DeleteItem removes exactly the item with the given id.
func (l List) DeleteItem(id int64) (List, error) {
	i := l.itemIndex(id)
	if i < 0 {
		return l, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}
	out := l.clone()
	out.Items = append(out.Items[:i], out.Items[i+1:]...)
	return out, nil
}

// ToggleItem flips one item's done flag.
func (l List) ToggleItem(id int64, now time.Time) (List, error) {
	i := l.itemIndex(id)
	if i < 0 {
		return l, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}
	out := l.clone()
	out.Items[i].Done = !out.Items[i].Done
	out.Items[i].LastUpdated = Ptr(now)
	return out, nil
}

// ToggleAllItems flips every item individually; it does not force a state.
func (l List) ToggleAllItems(now time.Time) List {
	out := l.clone()
	for i := range out.Items {
		out.Items[i].Done = !out.Items[i].Done
		out.Items[i].LastUpdated = Ptr(now)
	}
	return out
}

// ClearDoneItems drops every done item and reports how many were removed.
func (l List) ClearDoneItems() (List, int) {
	out := l.clone()
	kept := out.Items[:0]
	for _, it := range out.Items {
		if !it.Done {
			kept = append(kept, it)
		}
	}
	removed := len(out.Items) - len(kept)
	out.Items = kept
	return out, removed
}

// FindItem looks an item up by id.
func (l List) FindItem(id int64) (Item, bool) {
	i := l.itemIndex(id)
	if i < 0 {
		return Item{}, false
	}
	return l.Items[i], true
}

// Counts tallies the list's items.
func (l List) Counts() Counts {
	var c Counts
	for _, it := range l.Items {
		c.add(it.Done)
	}
	return c
}

func (l List) itemIndex(id int64) int {
	for i, it := range l.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (l List) hasItem(id int64) bool { return l.itemIndex(id) >= 0 }

// clone copies the list and its item slice so callers never share backing arrays.
func (l List) clone() List {
	out := l
	out.Items = make([]Item, len(l.Items))
	copy(out.Items, l.Items)
	return out
}
