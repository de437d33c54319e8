package planner

import (
	"fmt"
	"strings"

	"tableflip.dev/planner/pkg/derive"
)

// DuplicateCheck is the result of comparing a proposed title with existing
// ones.
type DuplicateCheck struct {
	// Exact is set when a title is identical after normalization.
	Exact bool `json:"exact"`
	// Similar lists existing titles that overlap by keyword.
	Similar []string `json:"similar,omitempty"`
}

// Found reports whether any duplicate was detected.
func (d DuplicateCheck) Found() bool {
	return d.Exact || len(d.Similar) > 0
}

func (d DuplicateCheck) err(title string, allow bool) error {
	if d.Exact {
		return fmt.Errorf("%w: %q already exists", ErrDuplicate, title)
	}
	if len(d.Similar) > 0 && !allow {
		return fmt.Errorf("%w: %q resembles %s", ErrPossibleDuplicate, title, quoteAll(d.Similar))
	}
	return nil
}

func quoteAll(titles []string) string {
	q := make([]string, len(titles))
	for i, t := range titles {
		q[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(q, ", ")
}

func compareTitles(title string, existing []string) DuplicateCheck {
	var d DuplicateCheck
	for _, e := range existing {
		switch {
		case derive.IsExactDuplicate(title, e):
			d.Exact = true
		case derive.IsDuplicate(title, e):
			d.Similar = append(d.Similar, e)
		}
	}
	return d
}

// CheckTaskTitle compares title against every existing task.
func (p *Planner) CheckTaskTitle(title string) DuplicateCheck {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.checkTaskTitle(title)
}

func (p *Planner) checkTaskTitle(title string) DuplicateCheck {
	titles := make([]string, len(p.tasks))
	for i, t := range p.tasks {
		titles[i] = t.Title
	}
	return compareTitles(title, titles)
}

// CheckExpenseTitle compares title against every existing expense,
// mirrored ones included.
func (p *Planner) CheckExpenseTitle(title string) DuplicateCheck {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.checkExpenseTitle(title)
}

func (p *Planner) checkExpenseTitle(title string) DuplicateCheck {
	titles := make([]string, len(p.expenses))
	for i, e := range p.expenses {
		titles[i] = e.Title
	}
	return compareTitles(title, titles)
}
