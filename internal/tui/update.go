package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case boardLoadedMsg:
		m.loading = false
		m.err = nil
		m.orders = msg.board.Orders
		m.degraded = msg.board.Degraded
		m.summary = msg.summary
		if m.selected >= len(m.orders) {
			m.selected = max(len(m.orders)-1, 0)
		}
		// Keep the detail pane on the same order across refreshes.
		if m.view == ViewDetail && m.detail != nil {
			for i := range m.orders {
				if m.orders[i].ID == m.detail.ID {
					m.detail = &m.orders[i]
					break
				}
			}
		}
		return m, nil

	case errorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.loadBoard(), m.tickCmd())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		return m.handleUp()

	case key.Matches(msg, m.keys.Down):
		return m.handleDown()

	case key.Matches(msg, m.keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, m.keys.Back):
		return m.handleBack()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadBoard()

	case key.Matches(msg, m.keys.Filter):
		if m.view != ViewBoard {
			return m, nil
		}
		m.filterIdx = (m.filterIdx + 1) % len(filterCycle())
		m.selected = 0
		m.loading = true
		return m, m.loadBoard()

	case key.Matches(msg, m.keys.Sort):
		if m.view != ViewBoard {
			return m, nil
		}
		idx := int(msg.String()[0] - '1')
		if idx < 0 || idx >= len(sortKeys) {
			return m, nil
		}
		m.sort = tablesort.Toggle(sortKeys[idx], m.sort)
		m.loading = true
		return m, m.loadBoard()
	}

	return m, nil
}

func (m Model) handleUp() (tea.Model, tea.Cmd) {
	if m.view == ViewBoard && len(m.orders) > 0 {
		m.selected--
		if m.selected < 0 {
			m.selected = len(m.orders) - 1
		}
	}
	return m, nil
}

func (m Model) handleDown() (tea.Model, tea.Cmd) {
	if m.view == ViewBoard && len(m.orders) > 0 {
		m.selected++
		if m.selected >= len(m.orders) {
			m.selected = 0
		}
	}
	return m, nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.view == ViewBoard && len(m.orders) > 0 {
		m.detail = &m.orders[m.selected]
		m.view = ViewDetail
	}
	return m, nil
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	if m.view == ViewDetail {
		m.view = ViewBoard
		m.detail = nil
	}
	return m, nil
}
