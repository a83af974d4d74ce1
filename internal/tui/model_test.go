package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trailerboard/internal/orderstatus"
	"github.com/creamcroissant/trailerboard/internal/service"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

type stubBoard struct {
	service.OrderBoardService
	last service.OrderListInput
	rows []service.OrderView
	err  error
}

func (s *stubBoard) List(_ context.Context, input service.OrderListInput) (service.OrderBoard, error) {
	s.last = input
	if s.err != nil {
		return service.OrderBoard{}, s.err
	}
	return service.OrderBoard{Orders: s.rows, Total: len(s.rows), Sort: input.Sort}, nil
}

func (s *stubBoard) Summary(context.Context) (service.StatusSummary, error) {
	return service.StatusSummary{Total: int64(len(s.rows))}, nil
}

func keyRunes(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func loaded(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func sampleRows() []service.OrderView {
	return []service.OrderView{
		{ID: 1, OrderNumber: "A-1", Status: orderstatus.Annotate(orderstatus.Record{})},
		{ID: 2, OrderNumber: "A-2", Status: orderstatus.Annotate(orderstatus.Record{})},
	}
}

func TestSortKeyCyclesColumn(t *testing.T) {
	board := &stubBoard{rows: sampleRows()}
	m := NewModel(board, Options{})

	for _, want := range []tablesort.Direction{tablesort.Ascending, tablesort.Descending, tablesort.None} {
		next, cmd := m.Update(keyRunes("2"))
		m = loaded(t, next.(Model), cmd)
		assert.Equal(t, want, tablesort.DirectionOf(service.ColumnDealer, m.sort))
		assert.Equal(t, want, tablesort.DirectionOf(service.ColumnDealer, board.last.Sort))
	}
}

func TestFilterCyclesThroughPipeline(t *testing.T) {
	board := &stubBoard{}
	m := NewModel(board, Options{})

	next, cmd := m.Update(keyRunes("f"))
	m = loaded(t, next.(Model), cmd)
	assert.Equal(t, orderstatus.StatusSchedule.String(), board.last.Status)

	for range orderstatus.Pipeline() {
		next, cmd = m.Update(keyRunes("f"))
		m = loaded(t, next.(Model), cmd)
	}
	assert.Equal(t, "", board.last.Status)
}

func TestNavigationAndDetail(t *testing.T) {
	board := &stubBoard{rows: sampleRows()}
	m := loaded(t, NewModel(board, Options{}), NewModel(board, Options{}).loadBoard())
	require.Len(t, m.orders, 2)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Equal(t, 1, m.selected, "wraps to last row")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Equal(t, ViewDetail, m.view)
	assert.Equal(t, "A-2", m.detail.OrderNumber)

	m.width, m.height = 100, 30
	assert.Contains(t, m.View(), "Order A-2")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Equal(t, ViewBoard, m.view)
	assert.Nil(t, m.detail)
}

func TestLoadErrorShown(t *testing.T) {
	board := &stubBoard{err: errors.New("database is locked")}
	m := NewModel(board, Options{})
	m = loaded(t, m, m.loadBoard())
	m.width, m.height = 100, 30
	assert.Contains(t, m.View(), "database is locked")
}

func TestHeaderShowsGlyph(t *testing.T) {
	m := NewModel(&stubBoard{}, Options{Sort: tablesort.State{{Column: service.ColumnBuildDate, Direction: tablesort.Descending}}})
	assert.Contains(t, m.headerLine(), "5 Build ▼")
	assert.NotContains(t, m.headerLine(), "▲")
}

func TestPadTruncates(t *testing.T) {
	assert.Equal(t, "abc  ", pad("abc", 5))
	assert.Equal(t, 4, len([]rune(pad("abcdefgh", 4))))
}
