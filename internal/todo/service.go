// Package todo applies list and item mutations to the stored document. Each
// call reads the whole document, transforms it and writes it back.
package todo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// Service serializes its own load/save cycles. Writers in other processes
// still race on a last-writer-wins basis.
type Service struct {
	mu     sync.Mutex
	repo   *store.Repository
	now    func() time.Time
	logger *log.Logger
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func New(repo *store.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, logger: log.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Repository exposes the underlying document store.
func (s *Service) Repository() *store.Repository { return s.repo }

// Lists returns the whole document.
func (s *Service) Lists(ctx context.Context) (model.Lists, error) {
	return s.repo.Load(ctx)
}

// List returns one list by id.
func (s *Service) List(ctx context.Context, id int64) (model.List, error) {
	lists, err := s.repo.Load(ctx)
	if err != nil {
		return model.List{}, err
	}
	l, ok := lists.Find(id)
	if !ok {
		return model.List{}, fmt.Errorf("list %d: %w", id, model.ErrListNotFound)
	}
	return l, nil
}

// ---------------------------------------------------
// Lists
// ---------------------------------------------------

func (s *Service) CreateList(ctx context.Context, name string) (model.List, error) {
	var created model.List
	_, err := s.update(ctx, func(ls model.Lists) (model.Lists, error) {
		out, l, err := ls.Create(name, s.now())
		created = l
		return out, err
	})
	if err != nil {
		return model.List{}, err
	}
	s.logger.Debug("created list", "list", created.ID, "name", created.Name)
	return created, nil
}

// RenameList renames a list. Renaming to the current name writes nothing.
func (s *Service) RenameList(ctx context.Context, id int64, name string) (model.Lists, error) {
	return s.mutate(ctx, "renamed list", id, func(ls model.Lists, now time.Time) (model.Lists, bool, error) {
		out, err := ls.Rename(id, name, now)
		if err != nil {
			return nil, false, err
		}
		before, _ := ls.Find(id)
		after, _ := out.Find(id)
		return out, before.Name != after.Name, nil
	})
}

func (s *Service) DeleteList(ctx context.Context, id int64) (model.Lists, error) {
	return s.mutate(ctx, "deleted list", id, func(ls model.Lists, _ time.Time) (model.Lists, bool, error) {
		out, err := ls.Delete(id)
		return out, true, err
	})
}

func (s *Service) ToggleList(ctx context.Context, id int64) (model.Lists, error) {
	return s.mutate(ctx, "toggled list", id, func(ls model.Lists, now time.Time) (model.Lists, bool, error) {
		out, err := ls.Toggle(id, now)
		return out, true, err
	})
}

func (s *Service) ToggleAllLists(ctx context.Context) (model.Lists, error) {
	return s.mutate(ctx, "toggled all lists", 0, func(ls model.Lists, now time.Time) (model.Lists, bool, error) {
		return ls.ToggleAll(now), len(ls) > 0, nil
	})
}

// ClearDoneLists deletes every done list and returns how many went.
func (s *Service) ClearDoneLists(ctx context.Context) (model.Lists, int, error) {
	var removed int
	out, err := s.mutate(ctx, "cleared done lists", 0, func(ls model.Lists, _ time.Time) (model.Lists, bool, error) {
		var kept model.Lists
		kept, removed = ls.ClearDone()
		return kept, removed > 0, nil
	})
	return out, removed, err
}

// ---------------------------------------------------
// Items
// ---------------------------------------------------

func (s *Service) AddItem(ctx context.Context, listID int64, text string) (model.Item, error) {
	var added model.Item
	_, err := s.update(ctx, func(ls model.Lists) (model.Lists, error) {
		now := s.now()
		return ls.Update(listID, now, func(l model.List) (model.List, error) {
			out, it, err := l.AddItem(text, now)
			added = it
			return out, err
		})
	})
	if err != nil {
		return model.Item{}, err
	}
	s.logger.Debug("added item", "list", listID, "item", added.ID)
	return added, nil
}

// EditItem replaces an item's text. The same text writes nothing.
func (s *Service) EditItem(ctx context.Context, listID, itemID int64, text string) (model.List, error) {
	return s.mutateList(ctx, "edited item", listID, itemID, func(l model.List, now time.Time) (model.List, bool, error) {
		out, err := l.EditItem(itemID, text, now)
		if err != nil {
			return l, false, err
		}
		before, _ := l.FindItem(itemID)
		after, _ := out.FindItem(itemID)
		return out, before.Text != after.Text, nil
	})
}

func (s *Service) DeleteItem(ctx context.Context, listID, itemID int64) (model.List, error) {
	return s.mutateList(ctx, "deleted item", listID, itemID, func(l model.List, _ time.Time) (model.List, bool, error) {
		out, err := l.DeleteItem(itemID)
		return out, true, err
	})
}

func (s *Service) ToggleItem(ctx context.Context, listID, itemID int64) (model.List, error) {
	return s.mutateList(ctx, "toggled item", listID, itemID, func(l model.List, now time.Time) (model.List, bool, error) {
		out, err := l.ToggleItem(itemID, now)
		return out, true, err
	})
}

func (s *Service) ToggleAllItems(ctx context.Context, listID int64) (model.List, error) {
	return s.mutateList(ctx, "toggled all items", listID, 0, func(l model.List, now time.Time) (model.List, bool, error) {
		return l.ToggleAllItems(now), len(l.Items) > 0, nil
	})
}

// ClearDoneItems deletes every done item of one list and returns how many went.
func (s *Service) ClearDoneItems(ctx context.Context, listID int64) (model.List, int, error) {
	var removed int
	out, err := s.mutateList(ctx, "cleared done items", listID, 0, func(l model.List, _ time.Time) (model.List, bool, error) {
		var kept model.List
		kept, removed = l.ClearDoneItems()
		return kept, removed > 0, nil
	})
	return out, removed, err
}

// update holds the service lock across one read-modify-write of the document.
func (s *Service) update(ctx context.Context, fn func(model.Lists) (model.Lists, error)) (model.Lists, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Update(ctx, fn)
}

// errUnchanged aborts a load/save cycle without writing.
var errUnchanged = errors.New("unchanged")

// mutate runs fn inside a load/save cycle. When fn reports no change nothing
// is written and the loaded document is returned.
func (s *Service) mutate(ctx context.Context, what string, id int64, fn func(model.Lists, time.Time) (model.Lists, bool, error)) (model.Lists, error) {
	out, err := s.update(ctx, func(ls model.Lists) (model.Lists, error) {
		out, changed, err := fn(ls, s.now())
		if err != nil {
			return nil, err
		}
		if !changed {
			return nil, errUnchanged
		}
		return out, nil
	})
	if errors.Is(err, errUnchanged) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	if id != 0 {
		s.logger.Debug(what, "list", id)
	} else {
		s.logger.Debug(what, "lists", len(out))
	}
	return out, nil
}

// mutateList runs fn against one list. A change also stamps the list's
// lastUpdated.
func (s *Service) mutateList(ctx context.Context, what string, listID, itemID int64, fn func(model.List, time.Time) (model.List, bool, error)) (model.List, error) {
	lists, err := s.update(ctx, func(ls model.Lists) (model.Lists, error) {
		now := s.now()
		return ls.Update(listID, now, func(l model.List) (model.List, error) {
			out, changed, err := fn(l, now)
			if err != nil {
				return l, err
			}
			if !changed {
				return l, errUnchanged
			}
			return out, nil
		})
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return model.List{}, err
	}
	l, _ := lists.Find(listID)
	if err == nil {
		if itemID != 0 {
			s.logger.Debug(what, "list", listID, "item", itemID)
		} else {
			s.logger.Debug(what, "list", listID)
		}
	}
	return l, nil
}
