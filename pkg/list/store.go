// Package list holds the ordered, entity-indexed list of text items.
//
// Every item carries its display row. The rows of live items are always
// exactly 0..N-1; InsertAt and Remove restore that before returning and
// panic if they ever find it broken, since rendering and serialization both
// index by row.
package list

import (
	"fmt"
	"strings"

	"tableflip.dev/todo/pkg/entity"
)

// InsertHook is called for every item the store creates, after the row
// invariant has been restored.
type InsertHook func(id entity.ID, it *Item)

// Store is the ordered list. It has a single owner and is not safe for
// concurrent use.
type Store struct {
	items *entity.Registry[*Item]
	onNew InsertHook
}

// New returns an empty store. hook may be nil.
func New(hook InsertHook) *Store {
	return &Store{
		items: entity.NewRegistry[*Item](),
		onNew: hook,
	}
}

// Len returns the number of live items.
func (s *Store) Len() int {
	return s.items.Len()
}

// Get returns the item for id, or false when id is stale or unknown.
func (s *Store) Get(id entity.ID) (*Item, bool) {
	return s.items.Get(id)
}

// InsertAt shifts every item at or below row down by one and creates an
// empty item at row.
func (s *Store) InsertAt(row int) entity.ID {
	if row < 0 || row > s.items.Len() {
		panic(fmt.Sprintf("list: insert at row %d outside 0..%d", row, s.items.Len()))
	}

	s.items.Each(func(_ entity.ID, it *Item) {
		if it.Row >= row {
			it.Row++
		}
	})

	it := &Item{Row: row}
	id := s.items.Insert(it)
	s.mustBeContiguous()

	if s.onNew != nil {
		s.onNew(id, it)
	}
	return id
}

// InsertAfter inserts directly below id. When id is stale or unknown the new
// item goes first.
func (s *Store) InsertAfter(id entity.ID) entity.ID {
	row := 0
	if it, ok := s.items.Get(id); ok {
		row = it.Row + 1
	}
	return s.InsertAt(row)
}

// Remove deletes the item for id and closes the gap it leaves. Stale or
// unknown IDs are ignored.
func (s *Store) Remove(id entity.ID) bool {
	removed, ok := s.items.Remove(id)
	if !ok {
		return false
	}
	s.items.Each(func(_ entity.ID, it *Item) {
		if it.Row > removed.Row {
			it.Row--
		}
	})
	s.mustBeContiguous()
	return true
}

// RemoveGuarded is Remove, except that the last remaining item is kept.
func (s *Store) RemoveGuarded(id entity.ID) bool {
	if s.items.Len() <= 1 {
		return false
	}
	return s.Remove(id)
}

// Clear removes every item.
func (s *Store) Clear() {
	for {
		id, ok := s.items.First()
		if !ok {
			return
		}
		s.Remove(id)
	}
}

// Load replaces the contents with one item per line of text. Item text is
// set with change notification blocked.
func (s *Store) Load(text string) {
	s.Clear()
	for row, line := range Lines(text) {
		id := s.InsertAt(row)
		it, _ := s.items.Get(id)
		it.SetTextQuiet(line)
	}
}

// Rows returns the item IDs in row order.
func (s *Store) Rows() []entity.ID {
	rows := make([]entity.ID, s.items.Len())
	s.items.Each(func(id entity.ID, it *Item) {
		rows[it.Row] = id
	})
	return rows
}

// Texts returns the item texts in row order, empty ones included.
func (s *Store) Texts() []string {
	texts := make([]string, s.items.Len())
	s.items.Each(func(_ entity.ID, it *Item) {
		texts[it.Row] = it.text
	})
	return texts
}

// Serialize renders every non-empty item followed by a newline, in row
// order. Empty rows are dropped here but kept by Load.
func (s *Store) Serialize() string {
	var b strings.Builder
	for _, text := range s.Texts() {
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Lines splits text on newlines. A trailing carriage return is stripped from
// each line and a final newline does not produce an extra empty line.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func (s *Store) mustBeContiguous() {
	n := s.items.Len()
	seen := make([]bool, n)
	s.items.Each(func(id entity.ID, it *Item) {
		if it.Row < 0 || it.Row >= n {
			panic(fmt.Sprintf("list: item %v has row %d outside 0..%d", id, it.Row, n-1))
		}
		if seen[it.Row] {
			panic(fmt.Sprintf("list: row %d held twice", it.Row))
		}
		seen[it.Row] = true
	})
}
