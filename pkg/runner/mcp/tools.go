package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListEntriesTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerSaveEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerListHabitsTool(srv, svc)
	registerAddHabitTool(srv, svc)
	registerMarkHabitDoneTool(srv, svc)
	registerUndoHabitDoneTool(srv, svc)
	registerRenameHabitTool(srv, svc)
	registerDeleteHabitTool(srv, svc)
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List every journal entry, newest date first."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		results, err := svc.ListEntries(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": results,
			"count":   len(results),
		})
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Filter entries whose date or title contains the query, ignoring case."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text. Blank returns every entry."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := request.GetString("query", "")
		results, err := svc.SearchEntries(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch the entry for a single date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Entry date in YYYY-MM-DD form."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.GetEntry(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSaveEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save_entry",
		mcp.WithDescription("Create or replace the entry for a date."),
		mcp.WithString("date",
			mcp.Description("Entry date in YYYY-MM-DD form. Defaults to today."),
		),
		mcp.WithString("title",
			mcp.Description("Entry title, at most 50 characters."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Entry body."),
		),
		mcp.WithArray("images",
			mcp.Description("Image references; the first one is mirrored into the legacy image field."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("default_title",
			mcp.Description("Fill a blank title with a label derived from the date."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date         string   `json:"date"`
			Title        string   `json:"title"`
			Text         string   `json:"text"`
			Images       []string `json:"images"`
			DefaultTitle bool     `json:"default_title"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.SaveEntry(ctx, SaveEntryOptions{
			Date:         args.Date,
			Title:        args.Title,
			Text:         args.Text,
			Images:       args.Images,
			DefaultTitle: args.DefaultTitle,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete the entry for a date. Deleting a missing entry succeeds."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Entry date in YYYY-MM-DD form."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEntry(ctx, date); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"date":    strings.TrimSpace(date),
			"deleted": true,
		})
	})
}

func registerListHabitsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_habits",
		mcp.WithDescription("List tracked habits with their current streaks."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		habits := svc.ListHabits()
		return toJSONResult(map[string]any{
			"habits": habits,
			"count":  len(habits),
		})
	})
}

func registerAddHabitTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_habit",
		mcp.WithDescription("Start tracking a new habit with a zero streak."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Habit name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.AddHabit(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMarkHabitDoneTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"mark_habit_done",
		mcp.WithDescription("Mark a habit done for today. Repeating on the same day has no effect."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Habit identifier."),
			mcp.Min(1),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetInt("id", 0)
		if id <= 0 {
			return mcp.NewToolResultError("habit id is required"), nil
		}
		dto, err := svc.MarkHabitDone(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUndoHabitDoneTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"undo_habit_done",
		mcp.WithDescription("Undo today's completion of a habit."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Habit identifier."),
			mcp.Min(1),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetInt("id", 0)
		if id <= 0 {
			return mcp.NewToolResultError("habit id is required"), nil
		}
		dto, err := svc.UndoHabitDone(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerRenameHabitTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"rename_habit",
		mcp.WithDescription("Rename a habit, keeping its streak."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Habit identifier."),
			mcp.Min(1),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("New habit name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetInt("id", 0)
		if id <= 0 {
			return mcp.NewToolResultError("habit id is required"), nil
		}
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.RenameHabit(id, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteHabitTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_habit",
		mcp.WithDescription("Stop tracking a habit."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Habit identifier."),
			mcp.Min(1),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetInt("id", 0)
		if id <= 0 {
			return mcp.NewToolResultError("habit id is required"), nil
		}
		if err := svc.DeleteHabit(id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"deleted": true,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
