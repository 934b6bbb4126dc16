package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/pkg/format"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const barWidth = 24

// GoalRenderer renders savings goal progress
type GoalRenderer struct {
	out    io.Writer
	format OutputFormat
}

// NewGoalRenderer creates a new goal renderer
func NewGoalRenderer(out io.Writer, format OutputFormat) *GoalRenderer {
	return &GoalRenderer{
		out:    out,
		format: format,
	}
}

// Render renders a goal status
func (r *GoalRenderer) Render(status *models.GoalStatus) error {
	if r.format != OutputTable {
		return encode(r.out, r.format, status)
	}

	goal := status.Goal
	title := cases.Title(language.Und, cases.NoLower).String(goal.Name)
	headerStyle.Fprintf(r.out, "🎯 %s\n\n", title)

	fmt.Fprintf(r.out, "  %s %s\n\n", ProgressBar(status.Percent, barWidth), format.Percent(status.Percent))

	t := newTable()
	t.AppendRow(table.Row{labelStyle.Sprint("  Saved"), amount(goal.Saved, goal)})
	t.AppendRow(table.Row{labelStyle.Sprint("  Target"), amount(goal.Target, goal)})
	t.AppendRow(table.Row{labelStyle.Sprint("  Remaining"), amount(status.Remaining, goal)})
	if goal.Deadline != nil && status.DaysLeft != nil {
		t.AppendRow(table.Row{labelStyle.Sprint("  Deadline"), fmt.Sprintf("%s (%s days left)",
			goal.Deadline.Format("2006-01-02"), format.Number(int64(*status.DaysLeft)))})
	}
	t.AppendRow(table.Row{labelStyle.Sprint("  Deposits"), format.Number(int64(len(goal.Deposits)))})
	fmt.Fprintln(r.out, t.Render())

	if status.Reached {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatSuccess("Goal reached!"))
	}
	return nil
}

// ProgressBar draws a fixed-width bar for percent in [0, 100]
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return okStyle.Sprint(strings.Repeat("█", filled)) + labelStyle.Sprint(strings.Repeat("░", width-filled))
}

func amount(v uint64, goal *models.SavingsGoal) string {
	s := format.Units(v, goal.Decimals)
	if goal.Token != "" {
		s += " " + goal.Token
	}
	return s
}
