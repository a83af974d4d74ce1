package tablesort

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Accessor extracts the sort key of a column from a row. Returning nil (or a
// nil pointer, or a blank string) marks the key as absent.
type Accessor[T any] func(T) any

// Columns maps column ids to their accessors.
type Columns[T any] map[string]Accessor[T]

// Sorter orders rows of one view according to a State.
type Sorter[T any] struct {
	tag     language.Tag
	columns Columns[T]
}

// NewSorter builds a sorter comparing strings with the collation rules of tag.
func NewSorter[T any](tag language.Tag, columns Columns[T]) *Sorter[T] {
	copied := make(Columns[T], len(columns))
	for id, accessor := range columns {
		if accessor != nil {
			copied[id] = accessor
		}
	}
	return &Sorter[T]{tag: tag, columns: copied}
}

// HasColumn reports whether column can be sorted by this sorter.
func (s *Sorter[T]) HasColumn(column string) bool {
	_, ok := s.columns[column]
	return ok
}

// ColumnIDs lists the sortable columns in lexical order.
func (s *Sorter[T]) ColumnIDs() []string {
	ids := make([]string, 0, len(s.columns))
	for id := range s.columns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Apply returns a reordered copy of items. Rows whose key is absent stay at
// their original index; rows with a key are stably sorted among the remaining
// slots. An empty state or an unknown column leaves the order untouched.
func (s *Sorter[T]) Apply(items []T, state State) []T {
	out := append([]T(nil), items...)
	criterion, ok := state.Active()
	if !ok {
		return out
	}
	accessor, ok := s.columns[criterion.Column]
	if !ok {
		return out
	}

	type keyed struct {
		row T
		key any
	}
	slots := make([]int, 0, len(out))
	present := make([]keyed, 0, len(out))
	for i, row := range out {
		key, ok := normalizeKey(accessor(row))
		if !ok {
			continue
		}
		slots = append(slots, i)
		present = append(present, keyed{row: row, key: key})
	}
	if len(present) < 2 {
		return out
	}

	// collate.Collator keeps scratch buffers, so every call gets its own.
	collator := collate.New(s.tag, collate.IgnoreCase)
	sort.SliceStable(present, func(i, j int) bool {
		cmp := compareKeys(collator, present[i].key, present[j].key)
		if criterion.Direction == Descending {
			cmp = -cmp
		}
		return cmp < 0
	})
	for i, slot := range slots {
		out[slot] = present[i].row
	}
	return out
}

func normalizeKey(raw any) (any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, false
		}
		return v, true
	case *string:
		if v == nil {
			return nil, false
		}
		return normalizeKey(*v)
	case *time.Time:
		if v == nil {
			return nil, false
		}
		return *v, true
	case time.Time:
		if v.IsZero() {
			return nil, false
		}
		return v, true
	case *int64:
		if v == nil {
			return nil, false
		}
		return float64(*v), true
	case *float64:
		if v == nil {
			return nil, false
		}
		return *v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		return v, true
	}
	return normalizeReflect(raw)
}

// normalizeReflect covers the key types the switch above does not name.
// Pointers are dereferenced before fmt.Stringer is consulted so a typed nil
// is absent instead of a panic or an address.
func normalizeReflect(raw any) (any, bool) {
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, false
		}
		return normalizeKey(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32:
		return rv.Float(), true
	}
	if v, ok := raw.(fmt.Stringer); ok {
		return normalizeKey(v.String())
	}
	return raw, true
}

func compareKeys(collator *collate.Collator, a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return collator.CompareString(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	}
	return collator.CompareString(fmt.Sprint(a), fmt.Sprint(b))
}
