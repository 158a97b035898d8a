package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"kara/internal/config"
	"kara/internal/repository"
)

// Renderer prints query results.
type Renderer struct {
	format      string
	width       int
	columnWidth int
	term        Terminal
}

// NewRenderer creates a renderer for the display settings.
func NewRenderer(display config.DisplayConfig, t Terminal) *Renderer {
	return &Renderer{
		format:      display.Format,
		width:       display.Width,
		columnWidth: display.ColumnWidth,
		term:        t,
	}
}

// Render writes result to w. Statements without columns get a short acknowledgement.
func (r *Renderer) Render(w io.Writer, result *repository.ResultSet) {
	if len(result.Columns) == 0 {
		fmt.Fprintln(w, "\nDone! The statement ran successfully.")
		return
	}

	if r.format == config.FormatTable {
		r.renderTable(w, result)
		return
	}
	r.renderPlain(w, result)
}

func (r *Renderer) renderPlain(w io.Writer, result *repository.ResultSet) {
	rule := strings.Repeat("=", r.width)

	fmt.Fprintln(w, "\nResults:")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, r.joinCells(result.Columns))
	fmt.Fprintln(w, rule)

	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = FormatValue(v)
		}
		fmt.Fprintln(w, r.joinCells(cells))
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total rows: %d\n", len(result.Rows))
}

func (r *Renderer) joinCells(cells []string) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = fmt.Sprintf("%-*s", r.columnWidth, c)
	}
	return strings.Join(padded, " | ")
}

func (r *Renderer) renderTable(w io.Writer, result *repository.ResultSet) {
	rows := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatValue(v)
		}
		rows[i] = cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(result.Columns...).
		Rows(rows...)

	if r.term.IsTTY {
		width := r.width
		if r.term.Width > 0 && r.term.Width < width {
			width = r.term.Width
		}
		t = t.Width(width).StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}

	fmt.Fprintln(w, "\nResults:")
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Total rows: %d\n", len(result.Rows))
}

// FormatValue renders one cell. Dates at midnight print without a time.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(repository.DateLayout)
		}
		return val.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
