package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/creamcroissant/trailerboard/internal/service"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

type column struct {
	key   string
	title string
	width int
}

var boardColumns = []column{
	{service.ColumnOrderNumber, "Order", 10},
	{service.ColumnDealer, "Dealer", 12},
	{service.ColumnModel, "Model", 12},
	{service.ColumnCustomer, "Customer", 16},
	{service.ColumnBuildDate, "Build", 10},
	{service.ColumnStatus, "Status", 14},
	{service.ColumnFinalizedDate, "Finalized", 10},
}

// View 实现 tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.view == ViewDetail && m.detail != nil {
		return m.renderDetailView()
	}
	return m.renderBoardView()
}

func (m Model) renderBoardView() string {
	var b strings.Builder

	title := "  Trailer Order Board"
	if status := m.filterStatus(); status != "" {
		title += "  ·  " + status.String()
	}
	b.WriteString(styleHeader.Width(m.width).Render(title))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleError.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n")
	}
	if m.degraded {
		b.WriteString(styleDegraded.Render("  Orders could not be loaded, showing an empty board"))
		b.WriteString("\n\n")
	}
	if m.loading {
		b.WriteString(styleMuted().Render("  Loading..."))
		b.WriteString("\n\n")
	}

	b.WriteString(styleTableHeader.Width(m.width).Render(m.headerLine()))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	if len(m.orders) == 0 {
		b.WriteString(styleMuted().Render("  No orders."))
		b.WriteString("\n")
	} else {
		// 按终端高度计算可见行数
		visibleRows := m.height - 12
		if visibleRows < 5 {
			visibleRows = 5
		}
		startIdx := 0
		if m.selected >= visibleRows {
			startIdx = m.selected - visibleRows + 1
		}
		endIdx := min(startIdx+visibleRows, len(m.orders))

		for i := startIdx; i < endIdx; i++ {
			b.WriteString(m.renderRow(m.orders[i], i == m.selected))
			b.WriteString("\n")
		}
		if len(m.orders) > visibleRows {
			b.WriteString(styleMuted().Render(fmt.Sprintf("  Showing %d-%d of %d orders", startIdx+1, endIdx, len(m.orders))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")
	b.WriteString(styleHelp.Render("  [↑/↓] Navigate  [Enter] Details  [1-7] Sort  [f] Filter  [r] Refresh  [q] Quit"))
	return b.String()
}

// headerLine renders the column titles with the active sort glyph.
func (m Model) headerLine() string {
	cells := make([]string, 0, len(boardColumns))
	for i, col := range boardColumns {
		title := fmt.Sprintf("%d %s", i+1, col.title)
		if glyph := tablesort.DirectionOf(col.key, m.sort).Glyph(); glyph != "" {
			title += " " + glyph
		}
		cells = append(cells, pad(title, col.width+2))
	}
	return " " + strings.Join(cells, " │ ")
}

func (m Model) renderRow(order service.OrderView, selected bool) string {
	values := []string{
		order.OrderNumber,
		order.DealerID,
		order.Model,
		order.Customer,
		order.BuildDate,
		"",
		order.FinalizedDate,
	}
	cells := make([]string, 0, len(values))
	for i, v := range values {
		width := boardColumns[i].width + 2
		if boardColumns[i].key == service.ColumnStatus {
			label := pad(order.Status.Label, width)
			cells = append(cells, Badge(label, order.Status.Color))
			continue
		}
		cells = append(cells, pad(v, width))
	}
	line := " " + strings.Join(cells, " │ ")
	if selected {
		return styleTableRowSelected.Width(m.width).Render(line)
	}
	return styleTableRow.Render(line)
}

func (m Model) renderSummary() string {
	if len(m.summary.Counts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.summary.Counts)+1)
	parts = append(parts, styleMuted().Render(fmt.Sprintf("Total %d", m.summary.Total)))
	for _, bucket := range m.summary.Counts {
		if bucket.Count == 0 {
			continue
		}
		parts = append(parts, Badge(fmt.Sprintf("%s %d", bucket.Label, bucket.Count), bucket.Color))
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderDetailView() string {
	order := m.detail
	var b strings.Builder
	b.WriteString(styleHeader.Width(m.width).Render("  Order " + order.OrderNumber))
	b.WriteString("\n\n")

	status := Badge(order.Status.Label, order.Status.Color)
	if order.Status.SubStage != "" {
		status += "  " + Badge(order.Status.SubStage, order.Status.SubStageColor)
	}

	rows := [][2]string{
		{"Dealer", order.DealerID},
		{"Model", order.Model},
		{"Customer", order.Customer},
		{"Marker", order.SequenceMarker},
		{"Build date", order.BuildDate},
		{"Finalized", order.FinalizedDate},
		{"Shipment", order.ShipmentID},
		{"Rule", order.Status.Rule},
		{"Notes", order.Notes},
	}
	lines := []string{styleLabel.Render("Status") + status}
	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = "-"
		}
		lines = append(lines, styleLabel.Render(row[0])+styleValue.Render(value))
	}

	box := styleDetailBox.Width(min(m.width-4, 80)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(styleHelp.Render("  [Esc] Back  [r] Refresh  [q] Quit"))
	return b.String()
}

// pad truncates or right-pads s to width terminal cells.
func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
