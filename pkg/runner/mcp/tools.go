package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/planner/pkg/assistant"
	"tableflip.dev/planner/pkg/derive"
	"tableflip.dev/planner/pkg/model"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddTaskTool(srv, svc)
	registerAnalyzeTasksTool(srv, svc)
	registerListTasksTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerBudgetSummaryTool(srv, svc)
	registerListEventsTool(srv, svc)
	registerSelectEventTool(srv, svc)
	registerAskTool(srv, svc)
}

func registerAddTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a new task to the planner."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the task."),
		),
		mcp.WithString("description",
			mcp.Description("Detailed description."),
		),
		mcp.WithString("projectId",
			mcp.Description("Project ID. Defaults to the first project of the selected event."),
		),
		mcp.WithString("priority",
			mcp.Description("Priority level."),
			mcp.Enum(string(model.PriorityLow), string(model.PriorityMedium), string(model.PriorityHigh)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args assistant.AddTaskArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Priority != "" && !args.Priority.Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("unknown priority %q", args.Priority)), nil
		}

		text, err := svc.AddTask(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func registerAnalyzeTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"analyze_tasks",
		mcp.WithDescription("Analyze the current tasks and report progress."),
		mcp.WithString("projectId",
			mcp.Description("Project ID to analyze. Defaults to every task of the selected event."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := svc.AnalyzeTasks(ctx, request.GetString("projectId", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks of the selected event, newest first."),
		mcp.WithString("filter",
			mcp.Description("Filter chip."),
			mcp.Enum(derive.Filters()...),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text matched against title and description."),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number."),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Tasks per page."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.ListTasks(ctx, ListTasksOptions{
			Filter:   request.GetString("filter", derive.FilterAll),
			Search:   request.GetString("search", ""),
			Page:     request.GetInt("page", 1),
			PageSize: request.GetInt("pageSize", derive.DefaultPageSize),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(list)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Advance a task to its next status (todo, in progress, completed)."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ToggleTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerBudgetSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"budget_summary",
		mcp.WithDescription("Summarize allocated, spent and remaining budget per category."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := svc.BudgetSummary(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(summary)
	})
}

func registerListEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List events and the currently selected one."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.ListEvents(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(list)
	})
}

func registerSelectEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"select_event",
		mcp.WithDescription("Select the event that scopes tasks, projects and budget. An empty id clears the selection."),
		mcp.WithString("id",
			mcp.Description("Event identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.SelectEvent(ctx, request.GetString("id", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(list)
	})
}

func registerAskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"ask",
		mcp.WithDescription("Send a chat message such as 'add task Book venue high priority' or 'analyze tasks'."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The message."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := request.RequireString("message")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		reply, err := svc.Ask(ctx, message)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if reply.Err != nil {
			return mcp.NewToolResultError(reply.Text), nil
		}
		return mcp.NewToolResultText(reply.Text), nil
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
