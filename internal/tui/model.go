package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/creamcroissant/trailerboard/internal/orderstatus"
	"github.com/creamcroissant/trailerboard/internal/service"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

// ViewType 表示当前视图
type ViewType int

const (
	ViewBoard  ViewType = iota // 订单看板
	ViewDetail                 // 订单详情
)

// sortKeys maps the number keys onto board columns in header order.
var sortKeys = []string{
	service.ColumnOrderNumber,
	service.ColumnDealer,
	service.ColumnModel,
	service.ColumnCustomer,
	service.ColumnBuildDate,
	service.ColumnStatus,
	service.ColumnFinalizedDate,
}

// Model 是主 TUI 模型
type Model struct {
	board service.OrderBoardService

	orders   []service.OrderView
	summary  service.StatusSummary
	selected int
	degraded bool

	sort tablesort.State
	// filterIdx indexes filterCycle; 0 shows every status.
	filterIdx int

	view   ViewType
	detail *service.OrderView

	// 终端尺寸
	width  int
	height int

	loading bool
	err     error

	refreshEvery time.Duration
	keys         keyMap
}

// keyMap 定义全部按键绑定
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Filter  key.Binding
	Sort    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter status"),
		),
		Sort: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "sort column"),
		),
	}
}

// Options tune the model.
type Options struct {
	// RefreshEvery is the auto refresh period; zero uses ten seconds.
	RefreshEvery time.Duration
	Sort         tablesort.State
}

// NewModel 创建新的 TUI 模型
func NewModel(board service.OrderBoardService, opts Options) Model {
	every := opts.RefreshEvery
	if every <= 0 {
		every = 10 * time.Second
	}
	return Model{
		board:        board,
		sort:         opts.Sort,
		view:         ViewBoard,
		keys:         defaultKeyMap(),
		loading:      true,
		refreshEvery: every,
	}
}

// Init 实现 tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadBoard(),
		m.tickCmd(),
	)
}

// 消息类型

type boardLoadedMsg struct {
	board   service.OrderBoard
	summary service.StatusSummary
}

type errorMsg struct {
	err error
}

type tickMsg time.Time

// 命令

func (m Model) loadBoard() tea.Cmd {
	board := m.board
	input := service.OrderListInput{Status: m.filterStatus().String(), Sort: m.sort}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		result, err := board.List(ctx, input)
		if err != nil {
			return errorMsg{err: err}
		}
		summary, err := board.Summary(ctx)
		if err != nil {
			return errorMsg{err: err}
		}
		return boardLoadedMsg{board: result, summary: summary}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// filterCycle is "all" followed by the pipeline.
func filterCycle() []orderstatus.Status {
	return append([]orderstatus.Status{""}, orderstatus.Pipeline()...)
}

func (m Model) filterStatus() orderstatus.Status {
	cycle := filterCycle()
	if m.filterIdx < 0 || m.filterIdx >= len(cycle) {
		return ""
	}
	return cycle[m.filterIdx]
}
