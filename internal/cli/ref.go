package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/route"
)

// idPrefix marks a ref as an ID even when it is small enough to be a
// position, as in imported documents with hand-picked IDs.
const idPrefix = "id:"

// parseRef reads a list or item reference: a 1-based position, an ID, or
// id:<ID>.
func parseRef(ref string) (n int64, byID bool, err error) {
	s := strings.TrimSpace(ref)
	if rest, ok := strings.CutPrefix(s, idPrefix); ok {
		s, byID = rest, true
	}
	n, err = strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return 0, false, NewExitError(ExitUsage, fmt.Sprintf("not a position or ID: %q", ref))
	}
	return n, byID, nil
}

// resolveList finds the list ref points at. Without the id: prefix a number
// no larger than the list count is a position; creation IDs are millisecond
// timestamps and sit far above any position.
func resolveList(lists model.Lists, ref string) (model.List, error) {
	n, byID, err := parseRef(ref)
	if err != nil {
		return model.List{}, err
	}
	if !byID && n <= int64(len(lists)) {
		return lists[n-1], nil
	}
	if l, ok := lists.Find(n); ok {
		return l, nil
	}
	return model.List{}, fmt.Errorf("list %s (have %d): %w", ref, len(lists), model.ErrListNotFound)
}

func resolveItem(l model.List, ref string) (model.Item, error) {
	n, byID, err := parseRef(ref)
	if err != nil {
		return model.Item{}, err
	}
	if !byID && n <= int64(len(l.Items)) {
		return l.Items[n-1], nil
	}
	if it, ok := l.FindItem(n); ok {
		return it, nil
	}
	return model.Item{}, fmt.Errorf("item %s in %q (have %d): %w", ref, l.Name, len(l.Items), model.ErrItemNotFound)
}

// parseFilterArg reads an optional filter argument.
func parseFilterArg(args []string) (route.Filter, error) {
	if len(args) == 0 {
		return route.All, nil
	}
	return route.ParseFilter(args[0])
}
