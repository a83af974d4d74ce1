// 文件路径: internal/tablesort/state.go
// 模块说明: 列表视图共用的三态排序（升序 → 降序 → 不排序）状态机。
package tablesort

import "strings"

// Direction is the sort direction of a column.
type Direction int

const (
	None Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return ""
	}
}

// Glyph returns the header indicator for d.
func (d Direction) Glyph() string {
	switch d {
	case Ascending:
		return "▲"
	case Descending:
		return "▼"
	default:
		return ""
	}
}

// MarshalText encodes d as "asc", "desc" or "".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText is lenient: unknown text decodes to None.
func (d *Direction) UnmarshalText(text []byte) error {
	*d = ParseDirection(string(text))
	return nil
}

// ParseDirection maps "asc"/"ascending"/"desc"/"descending" to a Direction.
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc", "ascending":
		return Ascending
	case "desc", "descending":
		return Descending
	default:
		return None
	}
}

// Criterion is one active column sort.
type Criterion struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// State holds the active sort criteria. Views only ever sort by a single
// column, so it is either empty or has one element.
type State []Criterion

// Toggle cycles column through ascending, descending and unsorted. Picking a
// different column discards the previous column's sort. The input state is
// never modified.
func Toggle(column string, current State) State {
	switch DirectionOf(column, current) {
	case None:
		return State{{Column: column, Direction: Ascending}}
	case Ascending:
		return State{{Column: column, Direction: Descending}}
	default:
		return State{}
	}
}

// DirectionOf reports how column is currently sorted in s.
func DirectionOf(column string, s State) Direction {
	for _, c := range s {
		if c.Column == column {
			return c.Direction
		}
	}
	return None
}

// Active returns the criterion in effect, if any.
func (s State) Active() (Criterion, bool) {
	for _, c := range s {
		if c.Column != "" && c.Direction != None {
			return c, true
		}
	}
	return Criterion{}, false
}

// String encodes s as "column:dir", or "" for the empty state.
func (s State) String() string {
	c, ok := s.Active()
	if !ok {
		return ""
	}
	return c.Column + ":" + c.Direction.String()
}

// ParseState decodes the "column:dir" form produced by State.String. A bare
// column name means ascending. Anything unparseable yields the empty state.
func ParseState(raw string) State {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return State{}
	}
	column, dir, found := strings.Cut(trimmed, ":")
	column = strings.TrimSpace(column)
	if column == "" {
		return State{}
	}
	direction := Ascending
	if found {
		direction = ParseDirection(dir)
		if direction == None {
			return State{}
		}
	}
	return State{{Column: column, Direction: direction}}
}
