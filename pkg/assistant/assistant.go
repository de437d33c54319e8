package assistant

import (
	"context"
	"regexp"
	"strings"

	"tableflip.dev/planner/pkg/model"
)

const (
	ToolAddTask      = "addTask"
	ToolAnalyzeTasks = "analyzeTasks"
)

// Help is the reply when no tool matches.
const Help = "I can help you add tasks or analyze your productivity. Try saying 'add task [title]' or 'analyze tasks'."

// Call is a tool invocation recognized in a message.
type Call struct {
	Tool string
	Task AddTaskArgs
}

var (
	addPhrases     = []string{"add task", "create task", "new task", "add a task", "create a task"}
	analyzePhrases = []string{"analyze", "analysis", "stats", "statistics", "productivity", "how many tasks", "task progress"}

	titleWithTask = regexp.MustCompile(`(?i)(?:add|create|new)\s+(?:a\s+)?task[:\s]+(.+?)(?:\s+with|\s+priority|\s+high|\s+low|$)`)
	titleBare     = regexp.MustCompile(`(?i)(?:add|create|new)\s+(.+?)(?:\s+with|\s+priority|\s+high|\s+low|$)`)
	descPattern   = regexp.MustCompile(`(?i)(?:with|description)[:\s]+(.+?)(?:\s+priority|$)`)

	stripPrefix   = regexp.MustCompile(`(?i)(?:please\s+)?(?:add|create|new)\s+(?:a\s+)?task[:\s]*`)
	stripWith     = regexp.MustCompile(`(?i)\s+with\s+.+$`)
	stripPriority = regexp.MustCompile(`(?i)\s+priority\s+.+$`)
)

// Interpret matches message against the known keywords. Add phrases win
// over analysis phrases.
func Interpret(message string) (Call, bool) {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, addPhrases) || strings.HasPrefix(lower, "add ") || strings.HasPrefix(lower, "create "):
		return Call{Tool: ToolAddTask, Task: parseAddTask(message, lower)}, true
	case containsAny(lower, analyzePhrases):
		return Call{Tool: ToolAnalyzeTasks}, true
	}
	return Call{}, false
}

func parseAddTask(message, lower string) AddTaskArgs {
	var args AddTaskArgs
	if m := titleWithTask.FindStringSubmatch(message); m != nil {
		args.Title = strings.TrimSpace(m[1])
	} else if m := titleBare.FindStringSubmatch(message); m != nil {
		args.Title = strings.TrimSpace(m[1])
	} else {
		cleaned := stripPrefix.ReplaceAllString(message, "")
		cleaned = stripWith.ReplaceAllString(cleaned, "")
		cleaned = strings.TrimSpace(stripPriority.ReplaceAllString(cleaned, ""))
		if cleaned == "" {
			cleaned = "New Task"
		}
		args.Title = cleaned
	}

	switch {
	case strings.Contains(lower, "high priority") || strings.Contains(lower, "priority high"):
		args.Priority = model.PriorityHigh
	case strings.Contains(lower, "low priority") || strings.Contains(lower, "priority low"):
		args.Priority = model.PriorityLow
	case strings.Contains(lower, "medium priority") || strings.Contains(lower, "priority medium"):
		args.Priority = model.PriorityMedium
	}

	if m := descPattern.FindStringSubmatch(message); m != nil {
		args.Description = strings.TrimSpace(m[1])
	}
	return args
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Reply is the outcome of one message. Tool is empty when nothing matched.
type Reply struct {
	Tool string `json:"tool,omitempty"`
	Text string `json:"text"`
	Err  error  `json:"-"`
}

type Assistant struct {
	Tools *Tools
}

func New(p Planner) *Assistant {
	return &Assistant{Tools: &Tools{Planner: p}}
}

// Send interprets message and runs the matching tool. Tool errors come
// back in the reply text as well as in Err.
func (a *Assistant) Send(ctx context.Context, message string) Reply {
	call, ok := Interpret(message)
	if !ok {
		return Reply{Text: Help}
	}
	var (
		text string
		err  error
	)
	switch call.Tool {
	case ToolAddTask:
		text, err = a.Tools.AddTask(ctx, call.Task)
	case ToolAnalyzeTasks:
		text, err = a.Tools.AnalyzeTasks(ctx, "")
	}
	if err != nil {
		return Reply{Tool: call.Tool, Text: "Error: " + err.Error(), Err: err}
	}
	if text == "" {
		text = call.Tool + " completed successfully."
	}
	return Reply{Tool: call.Tool, Text: text}
}
