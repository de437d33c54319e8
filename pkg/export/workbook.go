// Package export renders the budget as a spreadsheet.
package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"tableflip.dev/planner/pkg/model"
)

const (
	SummarySheet     = "Budget Summary"
	AllExpensesSheet = "All Expenses"

	// maxSheetName is the spreadsheet limit on sheet name length.
	maxSheetName = 31

	DefaultFileName = "budget-export.xlsx"
)

// Sheet is a named grid of cells. Numbers stay numeric so the spreadsheet
// can sum them.
type Sheet struct {
	Name string
	Rows [][]any
}

type Workbook struct {
	Sheets []Sheet
}

// Sheet returns the sheet called name.
func (w Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// BuildWorkbook lays out the budget summary, one sheet per category and a
// sheet of every expense.
func BuildWorkbook(categories []model.BudgetCategory, expenses []model.BudgetExpense) Workbook {
	var wb Workbook
	wb.Sheets = append(wb.Sheets, summarySheet(categories))

	used := map[string]bool{strings.ToLower(SummarySheet): true, strings.ToLower(AllExpensesSheet): true}
	for _, c := range categories {
		rows := [][]any{{"Expense", "Amount", "Vendor", "Date", "Paid"}}
		subtotal := decimal.Zero
		for _, e := range expenses {
			if e.CategoryID != c.ID {
				continue
			}
			rows = append(rows, []any{e.Title, e.Amount, e.Vendor, formatDate(e.Date), yesNo(e.IsPaid)})
			subtotal = subtotal.Add(decimal.NewFromFloat(e.Amount))
		}
		rows = append(rows, []any{"Subtotal", subtotal.InexactFloat64(), "", "", ""})
		wb.Sheets = append(wb.Sheets, Sheet{Name: sheetName(c.Name, used), Rows: rows})
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	all := [][]any{{"Category", "Expense", "Amount", "Vendor", "Date", "Paid"}}
	for _, e := range expenses {
		all = append(all, []any{names[e.CategoryID], e.Title, e.Amount, e.Vendor, formatDate(e.Date), yesNo(e.IsPaid)})
	}
	wb.Sheets = append(wb.Sheets, Sheet{Name: AllExpensesSheet, Rows: all})
	return wb
}

func summarySheet(categories []model.BudgetCategory) Sheet {
	rows := [][]any{{"Budget Category", "Allocated", "Spent", "Remaining", "Percentage Used"}}
	allocated, spent := decimal.Zero, decimal.Zero
	for _, c := range categories {
		a, s := decimal.NewFromFloat(c.Allocated), decimal.NewFromFloat(c.Spent)
		percent := "0%"
		if c.Allocated > 0 {
			percent = s.Div(a).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
		}
		rows = append(rows, []any{c.Name, c.Allocated, c.Spent, a.Sub(s).InexactFloat64(), percent})
		allocated = allocated.Add(a)
		spent = spent.Add(s)
	}
	rows = append(rows, []any{"TOTAL", allocated.InexactFloat64(), spent.InexactFloat64(), allocated.Sub(spent).InexactFloat64(), ""})
	return Sheet{Name: SummarySheet, Rows: rows}
}

// sheetName truncates name to the sheet name limit, replaces characters
// spreadsheets reject and suffixes repeats so every sheet is unique.
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "Category"
	}
	candidate := truncate(clean, maxSheetName)
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncate(clean, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func formatDate(ts model.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format("1/2/2006")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
