package derive

import (
	"regexp"
	"sort"
	"strings"

	"tableflip.dev/planner/pkg/model"
)

// TaskStats are the read-time counters shown on the dashboard.
type TaskStats struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	InProgress      int     `json:"inProgress"`
	Todo            int     `json:"todo"`
	HighPriority    int     `json:"highPriority"`
	MediumPriority  int     `json:"mediumPriority"`
	LowPriority     int     `json:"lowPriority"`
	TotalPrice      float64 `json:"totalPrice"`
	CompletedPrice  float64 `json:"completedPrice"`
	PercentComplete float64 `json:"percentComplete"`
}

func ComputeTaskStats(tasks []model.Task) TaskStats {
	var s TaskStats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case model.StatusCompleted:
			s.Completed++
			s.CompletedPrice += t.PriceValue()
		case model.StatusInProgress:
			s.InProgress++
		default:
			s.Todo++
		}
		switch t.Priority {
		case model.PriorityHigh:
			s.HighPriority++
		case model.PriorityLow:
			s.LowPriority++
		default:
			s.MediumPriority++
		}
		s.TotalPrice += t.PriceValue()
	}
	if s.Total > 0 {
		s.PercentComplete = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}

const (
	DefaultUpcomingLimit = 5
	DefaultRecentLimit   = 10
)

// UpcomingTasks returns open tasks with a due date, soonest first.
func UpcomingTasks(tasks []model.Task, limit int) []model.Task {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	var out []model.Task
	for _, t := range tasks {
		if t.DueDate != nil && t.Status != model.StatusCompleted {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate.Time)
	})
	return head(out, limit)
}

// RecentTasks returns the newest tasks first.
func RecentTasks(tasks []model.Task, limit int) []model.Task {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return head(newestFirst(tasks), limit)
}

func newestFirst(tasks []model.Task) []model.Task {
	out := append([]model.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out
}

func head(tasks []model.Task, n int) []model.Task {
	if len(tasks) > n {
		return tasks[:n]
	}
	return tasks
}

func GroupByStatus(tasks []model.Task) map[model.Status][]model.Task {
	out := map[model.Status][]model.Task{
		model.StatusTodo:       {},
		model.StatusInProgress: {},
		model.StatusCompleted:  {},
	}
	for _, t := range tasks {
		out[t.Status] = append(out[t.Status], t)
	}
	return out
}

func GroupByPriority(tasks []model.Task) map[model.Priority][]model.Task {
	out := map[model.Priority][]model.Task{
		model.PriorityHigh:   {},
		model.PriorityMedium: {},
		model.PriorityLow:    {},
	}
	for _, t := range tasks {
		out[t.Priority] = append(out[t.Priority], t)
	}
	return out
}

func TasksWithPrices(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.HasPrice() {
			out = append(out, t)
		}
	}
	return out
}

// Filter names accepted by FilterTasks.
const (
	FilterAll        = "all"
	FilterTodo       = "todo"
	FilterInProgress = "in_progress"
	FilterCompleted  = "completed"
	FilterPriced     = "priced"
	FilterUnpriced   = "unpriced"
)

// Filters lists the accepted filter names.
func Filters() []string {
	return []string{FilterAll, FilterTodo, FilterInProgress, FilterCompleted, FilterPriced, FilterUnpriced}
}

type TaskFilter struct {
	Filter string
	Search string
}

// FilterTasks applies the filter chip and search text, newest first.
func FilterTasks(tasks []model.Task, f TaskFilter) []model.Task {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []model.Task
	for _, t := range tasks {
		if !matchesFilter(t, f.Filter) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}
	return newestFirst(out)
}

func matchesFilter(t model.Task, filter string) bool {
	switch filter {
	case FilterTodo:
		return t.Status == model.StatusTodo
	case FilterInProgress:
		return t.Status == model.StatusInProgress
	case FilterCompleted:
		return t.Status == model.StatusCompleted
	case FilterPriced:
		return t.HasPrice()
	case FilterUnpriced:
		return !t.HasPrice()
	default:
		return true
	}
}

const DefaultPageSize = 5

// Page is one slice of a paginated list. Pages are 1-based.
type Page struct {
	Items      []model.Task `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalItems int          `json:"totalItems"`
	TotalPages int          `json:"totalPages"`
}

// Paginate clamps page into range and returns that page.
func Paginate(tasks []model.Task, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	p := Page{PageSize: pageSize, TotalItems: len(tasks)}
	p.TotalPages = (len(tasks) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if p.TotalPages > 0 && page > p.TotalPages {
		page = p.TotalPages
	}
	p.Page = page
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(tasks) {
		start = len(tasks)
	}
	if end > len(tasks) {
		end = len(tasks)
	}
	p.Items = tasks[start:end]
	return p
}

var (
	nonWord    = regexp.MustCompile(`[^\w\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases, trims, strips non-word characters and collapses
// whitespace.
func NormalizeText(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = nonWord.ReplaceAllString(s, "")
	return whitespace.ReplaceAllString(s, " ")
}

// significantWordLen is the length a word must exceed to count toward
// keyword overlap.
const significantWordLen = 3

const overlapThreshold = 0.7

// IsDuplicate reports whether two titles name the same thing: equal after
// normalization, or sharing at least 70% of the smaller title's
// significant words.
func IsDuplicate(a, b string) bool {
	na, nb := NormalizeText(a), NormalizeText(b)
	if na == nb {
		return true
	}
	ka, kb := significantWords(na), significantWords(nb)
	if len(ka) == 0 || len(kb) == 0 {
		return false
	}
	inB := make(map[string]bool, len(kb))
	for _, w := range kb {
		inB[w] = true
	}
	common := 0
	for _, w := range ka {
		if inB[w] {
			common++
		}
	}
	smaller := len(ka)
	if len(kb) < smaller {
		smaller = len(kb)
	}
	return float64(common) >= float64(smaller)*overlapThreshold
}

// IsExactDuplicate reports whether two titles are equal after normalization.
func IsExactDuplicate(a, b string) bool {
	return NormalizeText(a) == NormalizeText(b)
}

func significantWords(s string) []string {
	var out []string
	for _, w := range strings.Split(s, " ") {
		if len(w) > significantWordLen {
			out = append(out, w)
		}
	}
	return out
}
