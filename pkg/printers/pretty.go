package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"
	"github.com/shopspring/decimal"

	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/templates"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

const descriptionWidth = 72

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

// terminal reports whether stdout is interactive. Progress bars are only
// drawn on a terminal.
func (pp *PrettyPrint) terminal() bool {
	if pp.Out != nil {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) row(tbl *uitable.Table, id string, cells ...interface{}) {
	if pp.ShowID {
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		cells = append([]interface{}{y.Sprint(id)}, cells...)
	}
	tbl.AddRow(cells...)
}

// Money formats v as dollars with cents.
func Money(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Percent formats v with one decimal place.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// Bullet is the glyph shown in front of a task.
func Bullet(s model.Status) string {
	switch s {
	case model.StatusInProgress:
		return "◐"
	case model.StatusCompleted:
		return "✓"
	default:
		return "○"
	}
}

// Signifier marks high priority tasks.
func Signifier(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "!"
	case model.PriorityLow:
		return "·"
	default:
		return " "
	}
}

func (pp *PrettyPrint) Events(events []model.Event, selected string) {
	pp.TitleWithCount("Events", len(events), "event")
	if len(events) == 0 {
		pp.none()
		return
	}
	b := color.New(color.Bold)
	tbl := pp.table()
	for _, e := range events {
		mark, name := " ", e.Name
		if e.ID == selected {
			mark, name = "▸", b.Sprint(e.Name)
		}
		budget := ""
		if e.Budget != nil {
			budget = Money(*e.Budget)
		}
		pp.row(tbl, e.ID, mark, name, e.Type.Info().Name, budget)
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) Projects(projects []model.Project, events map[string]string) {
	pp.TitleWithCount("Projects", len(projects), "project")
	if len(projects) == 0 {
		pp.none()
		return
	}
	f := color.New(color.Faint)
	tbl := pp.table()
	for _, p := range projects {
		event := f.Sprint("unscoped")
		if p.EventID != "" {
			event = events[p.EventID]
		}
		shared := ""
		if len(p.SharedWith) > 0 {
			shared = f.Sprintf("shared with %s", strings.Join(p.SharedWith, ", "))
		}
		pp.row(tbl, p.ID, p.Name, event, shared)
	}
	pp.flush(tbl)
}

// Tasks prints one line per task: signifier, bullet, title, project, due
// date and price.
func (pp *PrettyPrint) Tasks(title string, tasks []model.Task, projects map[string]string) {
	pp.TitleWithCount(title, len(tasks), "task")
	if len(tasks) == 0 {
		pp.none()
		return
	}
	f := color.New(color.Faint)
	done := color.New(color.Faint, color.CrossedOut)
	tbl := pp.table()
	for _, t := range tasks {
		name := t.Title
		if t.Status == model.StatusCompleted {
			name = done.Sprint(t.Title)
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Local().Format("Jan 2")
		}
		price := ""
		if t.HasPrice() {
			price = Money(t.PriceValue())
		}
		pp.row(tbl, t.ID, Signifier(t.Priority)+" "+Bullet(t.Status), name, f.Sprint(projects[t.ProjectID]), due, price)
	}
	pp.flush(tbl)
}

// Task prints the full detail of one task.
func (pp *PrettyPrint) Task(t model.Task, project string) {
	pp.Title(fmt.Sprintf("%s %s %s", Signifier(t.Priority), Bullet(t.Status), t.Title))
	tbl := pp.table()
	tbl.AddRow("id", t.ID)
	tbl.AddRow("status", t.Status.Label())
	tbl.AddRow("priority", string(t.Priority))
	tbl.AddRow("project", project)
	if t.DueDate != nil {
		tbl.AddRow("due", t.DueDate.Local().Format("Mon Jan 2, 2006"))
	}
	if t.HasPrice() {
		tbl.AddRow("price", Money(t.PriceValue()))
	}
	if len(t.AssignedTo) > 0 {
		tbl.AddRow("assigned", strings.Join(t.AssignedTo, ", "))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	if t.Description != "" {
		pp.NewLine()
		_, _ = fmt.Fprintln(pp.out(), wordwrap.String(t.Description, descriptionWidth))
	}
	pp.NewLine()
}

func (pp *PrettyPrint) Categories(categories []model.BudgetCategory) {
	pp.TitleWithCount("Budget Categories", len(categories), "category")
	if len(categories) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	over := color.New(color.FgRed)
	tbl := pp.table()
	pp.row(tbl, "", bold.Sprint("Category"), bold.Sprint("Allocated"), bold.Sprint("Spent"), bold.Sprint("Remaining"), bold.Sprint("Used"))
	for _, c := range categories {
		remaining := Money(c.Remaining())
		if c.Remaining() < 0 {
			remaining = over.Sprint(remaining)
		}
		pp.row(tbl, c.ID, c.Name, Money(c.Allocated), Money(c.Spent), remaining, pp.bar(c.PercentUsed()))
	}
	for i := 1; i < 5; i++ {
		tbl.RightAlign(i + pp.offset())
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) offset() int {
	if pp.ShowID {
		return 1
	}
	return 0
}

// bar draws a ten cell usage bar on a terminal and a bare percentage
// elsewhere.
func (pp *PrettyPrint) bar(percent float64) string {
	if !pp.terminal() {
		return Percent(percent)
	}
	filled := int(percent / 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	c := color.New(color.FgGreen)
	if percent > 100 {
		c = color.New(color.FgRed)
	} else if percent > 80 {
		c = color.New(color.FgYellow)
	}
	return c.Sprint(strings.Repeat("█", filled)) + strings.Repeat("░", 10-filled) + " " + Percent(percent)
}

func (pp *PrettyPrint) Expenses(expenses []model.BudgetExpense, categories map[string]string) {
	pp.TitleWithCount("Expenses", len(expenses), "expense")
	if len(expenses) == 0 {
		pp.none()
		return
	}
	f := color.New(color.Faint)
	tbl := pp.table()
	for _, e := range expenses {
		paid := ""
		if e.IsPaid {
			paid = "paid"
		}
		title := e.Title
		if e.Mirrored() {
			title = f.Sprint(e.Title)
		}
		pp.row(tbl, e.ID, title, categories[e.CategoryID], Money(e.Amount), e.Vendor, e.Date.Local().Format("Jan 2"), paid)
	}
	tbl.RightAlign(2 + pp.offset())
	pp.flush(tbl)
}

func (pp *PrettyPrint) Budget(totals derive.BudgetTotals) {
	pp.Title("Budget")
	tbl := pp.table()
	allocated := Money(totals.Allocated)
	if totals.UsesTaskFallback {
		allocated += color.New(color.Faint).Sprint(" (from task prices)")
	}
	tbl.AddRow("allocated", allocated)
	tbl.AddRow("spent", Money(totals.Spent))
	tbl.AddRow("remaining", Money(totals.Remaining))
	tbl.AddRow("used", pp.bar(totals.PercentSpent))
	tbl.AddRow("task total", Money(totals.TaskBasedTotal))
	pp.flush(tbl)
}

func (pp *PrettyPrint) Stats(stats derive.TaskStats) {
	pp.Title("Progress")
	tbl := pp.table()
	tbl.AddRow("tasks", stats.Total)
	tbl.AddRow("complete", pp.bar(stats.PercentComplete))
	tbl.AddRow(Bullet(model.StatusTodo)+" to do", stats.Todo)
	tbl.AddRow(Bullet(model.StatusInProgress)+" in progress", stats.InProgress)
	tbl.AddRow(Bullet(model.StatusCompleted)+" completed", stats.Completed)
	tbl.AddRow("! high", stats.HighPriority)
	tbl.AddRow("  medium", stats.MediumPriority)
	tbl.AddRow("· low", stats.LowPriority)
	tbl.AddRow("priced", Money(stats.TotalPrice))
	tbl.AddRow("priced done", Money(stats.CompletedPrice))
	pp.flush(tbl)
}

func (pp *PrettyPrint) Suggestions(event model.Event, suggestions []templates.Suggestion) {
	pp.TitleWithCount("Suggested for "+event.Name, len(suggestions), "task")
	if len(suggestions) == 0 {
		pp.none()
		return
	}
	f := color.New(color.Faint)
	tbl := pp.table()
	for i, s := range suggestions {
		price := ""
		if s.Price > 0 {
			price = Money(s.Price)
		}
		note := s.Category
		if s.Duplicate() {
			note = f.Sprint("already planned")
		}
		tbl.AddRow(fmt.Sprintf("%2d.", i+1), Signifier(s.Priority), s.Title, price, note)
	}
	tbl.RightAlign(3)
	pp.flush(tbl)
}

// Reply prints a message from the assistant.
func (pp *PrettyPrint) Reply(text string) {
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(text, descriptionWidth))
}

func (pp *PrettyPrint) EventTypes(types []model.EventTypeInfo) {
	pp.Title("Event Types")
	tbl := pp.table()
	for _, t := range types {
		tbl.AddRow(string(t.ID), t.Name, color.New(color.Faint).Sprint(t.Description))
	}
	pp.flush(tbl)
}
