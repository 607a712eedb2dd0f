package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/tntzzxwife/my-order-app/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

const (
	columnSeparator = " │ "
	emptyMessage    = "目前沒有資料。"
)

// Renderer presents an order collection to the user.
type Renderer interface {
	Render(orders models.OrderCollection)
}

// TableRenderer writes orders as a table with colored statuses.
type TableRenderer struct {
	w io.Writer
}

func NewTableRenderer(w io.Writer) *TableRenderer {
	return &TableRenderer{w: w}
}

func (r *TableRenderer) Render(orders models.OrderCollection) {
	if len(orders) == 0 {
		fmt.Fprintln(r.w, warningStyle.Render(emptyMessage))
		return
	}
	fmt.Fprintln(r.w, renderTable(orders, -1))
}

// renderTable lays orders out under the file's column headers. The row at
// cursor is highlighted; pass -1 for none.
func renderTable(orders models.OrderCollection, cursor int) string {
	rows := lo.Map(orders, func(o models.OrderRecord, _ int) []string {
		return lo.Map(o.Fields(), func(f string, _ int) string {
			return strings.ReplaceAll(f, "\n", " ")
		})
	})

	widths := lo.Map(models.Columns, func(c string, _ int) int {
		return lipgloss.Width(c)
	})
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	statusCol := lo.IndexOf(models.Columns, models.ColStatus)

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, renderRow(models.Columns, widths, func(int) lipgloss.Style { return headerStyle }))
	lines = append(lines, headerStyle.Render(strings.Repeat("─", lo.Sum(widths)+len(columnSeparator)*(len(widths)-1))))
	for i, row := range rows {
		status := orders[i].Status
		selected := i == cursor
		lines = append(lines, renderRow(row, widths, func(col int) lipgloss.Style {
			switch {
			case selected:
				return selectedRowStyle
			case col == statusCol && status == models.Unshipped:
				return unshippedStyle
			case col == statusCol:
				return shippedStyle
			}
			return cellStyle
		}))
	}
	return strings.Join(lines, "\n")
}

func renderRow(cells []string, widths []int, style func(col int) lipgloss.Style) string {
	rendered := make([]string, len(cells))
	for i, cell := range cells {
		rendered[i] = style(i).Copy().Width(widths[i]).Render(cell)
	}
	return strings.Join(rendered, columnSeparator)
}
