package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/model"
)

// Calendar lists every day of the month holding on, with the tasks due that
// day. Tasks without a due date follow under "Open".
func (pp *PrettyPrint) Calendar(on time.Time, tasks ...model.Task) {
	then := time.Date(on.Year(), on.Month(), 1, 1, 0, 0, 0, time.Local)
	pp.PrintMonthCount(then, DueCounts(then, tasks))
	pp.PrintMonthLong(then, tasks...)
}

// DueCounts returns how many tasks fall due on each day of the month.
func DueCounts(then time.Time, tasks []model.Task) []int {
	count := make([]int, DaysIn(then))
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due := t.DueDate.Local()
		if due.Year() == then.Year() && due.Month() == then.Month() {
			count[due.Day()-1]++
		}
	}
	return count
}

const width = len("11 12 13 14 15 16 17") // an example week

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func (pp *PrettyPrint) PrintMonthLong(then time.Time, tasks ...model.Task) {
	w := pp.out()
	p := color.New()
	b := color.New(color.Bold)
	i := color.New(color.Italic)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)

	now := time.Now()
	d := StartDay(then)
	hasOpenDueDate := false
	for day := 1; day <= DaysIn(then); day++ {
		today := now.Year() == then.Year() && now.Month() == then.Month() && now.Day() == day
		printer := p
		switch {
		case d == time.Sunday && today:
			printer = bs
		case d == time.Sunday:
			printer = s
		case today:
			printer = b
		}
		_, _ = printer.Fprintf(w, "%2d %s", day, d.String()[0:1])

		found := false
		for _, t := range tasks {
			if t.DueDate == nil {
				hasOpenDueDate = true
				continue
			}
			due := t.DueDate.Local()
			if due.Year() != then.Year() || due.Month() != then.Month() || due.Day() != day {
				continue
			}
			if found {
				_, _ = p.Fprint(w, "      ")
			} else {
				_, _ = p.Fprint(w, "  ")
			}
			found = true
			_, _ = p.Fprintf(w, "%s %s %s\n", Signifier(t.Priority), Bullet(t.Status), t.Title)
		}
		d++
		if d > time.Saturday {
			d = time.Sunday
		}
		if !found {
			_, _ = p.Fprint(w, "\n")
		}
	}

	if hasOpenDueDate {
		_, _ = i.Fprintf(w, "\nOpen\n")
		for _, t := range tasks {
			if t.DueDate == nil {
				_, _ = p.Fprintf(w, "%s %s %s\n", Signifier(t.Priority), Bullet(t.Status), t.Title)
			}
		}
	}
	_, _ = fmt.Fprintln(w, "")
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
