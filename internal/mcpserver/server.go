// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the notes of one user as tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/jotter/internal/apperr"
	"github.com/starford/jotter/internal/assistant"
	"github.com/starford/jotter/internal/models"
	"github.com/starford/jotter/internal/noteservice"
)

const usageURI = "jotter://usage"

// Server wraps the MCP server with note tools bound to one owner.
type Server struct {
	mcp       *server.MCPServer
	notes     *noteservice.Service
	assistant *assistant.Gateway
	ownerID   string
	tools     map[string]server.ToolHandlerFunc
}

// New creates a new MCP server acting on behalf of ownerID.
func New(notes *noteservice.Service, gw *assistant.Gateway, ownerID string) *Server {
	s := &Server{notes: notes, assistant: gw, ownerID: ownerID, tools: map[string]server.ToolHandlerFunc{}}

	s.mcp = server.NewMCPServer(
		"Jotter",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.addTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List notes in one view, newest first."),
		mcp.WithString("view", mcp.Description("active (default), favorites or trash"),
			mcp.Enum("active", "favorites", "trash")),
		mcp.WithString("query", mcp.Description("Optional case-insensitive text filter")),
	), s.listNotes)

	s.addTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new active note. Read "+usageURI+" for the field rules."),
		mcp.WithString("title", mcp.Description("Note title")),
		mcp.WithString("content", mcp.Description("Note body, may contain HTML")),
		mcp.WithString("category", mcp.Description("Category, \"default\" when empty")),
		mcp.WithArray("tags", mcp.Description("Tags"), mcp.WithStringItems()),
		mcp.WithBoolean("is_favorite", mcp.Description("Start as favorite")),
	), s.createNote)

	s.addTool(mcp.NewTool("update_note",
		mcp.WithDescription("Replace the editable fields of a note. Omitted fields are reset."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("title", mcp.Description("Note title")),
		mcp.WithString("content", mcp.Description("Note body, may contain HTML")),
		mcp.WithString("category", mcp.Description("Category, \"default\" when empty")),
		mcp.WithArray("tags", mcp.Description("Tags"), mcp.WithStringItems()),
		mcp.WithBoolean("is_favorite", mcp.Description("Favorite flag")),
	), s.updateNote)

	s.addIDTool("toggle_favorite", "Flip the favorite flag of a note.", s.notes.ToggleFavorite)
	s.addIDTool("trash_note", "Move a note to the trash.", s.notes.Trash)
	s.addIDTool("restore_note", "Take a note out of the trash.", s.notes.Restore)

	s.addTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note permanently."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.deleteNote)

	s.addTool(mcp.NewTool("empty_trash",
		mcp.WithDescription("Permanently delete every trashed note."),
	), s.emptyTrash)

	s.addTool(mcp.NewTool("summarize",
		mcp.WithDescription("Summarize text in a few bullet points."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Text to summarize")),
	), s.askTool(s.assistant.Summarize))

	s.addTool(mcp.NewTool("extract_action_items",
		mcp.WithDescription("Extract a numbered list of tasks and deadlines from text."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Text to analyze")),
	), s.askTool(s.assistant.ExtractActionItems))

	s.mcp.AddResource(
		mcp.NewResource(usageURI, "Jotter usage",
			mcp.WithResourceDescription("Note fields, lifecycle and views."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readUsageResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// addTool registers a tool and keeps its handler addressable by name.
func (s *Server) addTool(tool mcp.Tool, h server.ToolHandlerFunc) {
	s.tools[tool.Name] = h
	s.mcp.AddTool(tool, h)
}

type idFunc func(ctx context.Context, ownerID, id string) (*models.Note, error)

func (s *Server) addIDTool(name, desc string, fn idFunc) {
	s.addTool(mcp.NewTool(name,
		mcp.WithDescription(desc),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		n, err := fn(ctx, s.ownerID, id)
		return noteResult(n, err)
	})
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := noteservice.Query{Text: req.GetString("query", "")}

	var (
		notes []models.Note
		err   error
	)
	switch view := req.GetString("view", "active"); view {
	case "", "active":
		notes, err = s.notes.ListActive(ctx, s.ownerID, q)
	case "favorites":
		notes, err = s.notes.ListFavorites(ctx, s.ownerID, q)
	case "trash":
		notes, err = s.notes.ListTrashed(ctx, s.ownerID, q)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown view: %s", view)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(notes, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.notes.Create(ctx, s.ownerID, noteInput(req))
	return noteResult(n, err)
}

func (s *Server) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.notes.Update(ctx, s.ownerID, id, noteInput(req))
	return noteResult(n, err)
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.notes.DeletePermanently(ctx, s.ownerID, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) emptyTrash(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.notes.EmptyTrash(ctx, s.ownerID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed %d notes", n)), nil
}

func (s *Server) askTool(fn func(ctx context.Context, content string) (string, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := req.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := fn(ctx, content)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

func (s *Server) readUsageResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      usageURI,
			MIMEType: "text/markdown",
			Text:     UsageGuide,
		},
	}, nil
}

func noteInput(req mcp.CallToolRequest) noteservice.NoteInput {
	in := noteservice.NoteInput{
		Title:      req.GetString("title", ""),
		Content:    req.GetString("content", ""),
		Category:   req.GetString("category", ""),
		IsFavorite: req.GetBool("is_favorite", false),
	}
	if raw, ok := req.GetArguments()["tags"].([]any); ok {
		for _, v := range raw {
			if tag, ok := v.(string); ok {
				in.Tags = append(in.Tags, tag)
			}
		}
	}
	return in
}

func noteResult(n *models.Note, err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError("note not found"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(n, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
