// Package route parses view addresses: the filter fragment (#all, #pending,
// #done) and the path picking the overview or a single list.
package route

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrBadRoute      = errors.New("bad route")
)

// Filter selects entries by their done flag.
type Filter int

const (
	All Filter = iota
	Pending
	Done
)

// Filters lists every filter in cycling order.
var Filters = []Filter{All, Pending, Done}

// ParseFilter accepts "", "all", "pending" and "done", with or without "#".
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#")) {
	case "", "all":
		return All, nil
	case "pending":
		return Pending, nil
	case "done":
		return Done, nil
	}
	return All, fmt.Errorf("%q: %w", s, ErrUnknownFilter)
}

func (f Filter) String() string {
	switch f {
	case Pending:
		return "pending"
	case Done:
		return "done"
	default:
		return "all"
	}
}

// Hash is the fragment form, e.g. "#pending".
func (f Filter) Hash() string { return "#" + f.String() }

// Label is the capitalized name shown in footers.
func (f Filter) Label() string {
	s := f.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Match reports whether an entry with the given done flag is shown.
func (f Filter) Match(done bool) bool {
	switch f {
	case Pending:
		return !done
	case Done:
		return done
	default:
		return true
	}
}

// Next cycles all -> pending -> done -> all.
func (f Filter) Next() Filter {
	return Filters[(int(f)+1)%len(Filters)]
}

// Apply keeps the entries matching f, preserving order.
func Apply[T any](xs []T, f Filter, done func(T) bool) []T {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if f.Match(done(x)) {
			out = append(out, x)
		}
	}
	return out
}

// ListPrefix is the path segment that addresses a single list.
const ListPrefix = "/to-do-list/"

// Route addresses one view. ListID zero means the overview.
type Route struct {
	ListID int64
	Filter Filter
}

// Overview reports whether r addresses the lists overview.
func (r Route) Overview() bool { return r.ListID == 0 }

func (r Route) String() string {
	path := "/"
	if !r.Overview() {
		path = ListPrefix + strconv.FormatInt(r.ListID, 10)
	}
	return path + r.Filter.Hash()
}

// Parse reads "/", "/to-do-list/<id>" or a bare fragment, each optionally
// followed by a filter fragment. Any leading path before "/to-do-list/" is
// ignored so full URLs work too.
func Parse(s string) (Route, error) {
	s = strings.TrimSpace(s)
	path, frag, _ := strings.Cut(s, "#")
	f, err := ParseFilter(frag)
	if err != nil {
		return Route{}, err
	}
	r := Route{Filter: f}

	path = strings.TrimRight(path, "/")
	i := strings.Index(path+"/", ListPrefix)
	if i < 0 {
		if path != "" {
			return Route{}, fmt.Errorf("%q: %w", s, ErrBadRoute)
		}
		return r, nil
	}
	rest := path[min(len(path), i+len(ListPrefix)):]
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return Route{}, fmt.Errorf("%q: list id: %w", s, ErrBadRoute)
	}
	r.ListID = id
	return r, nil
}
