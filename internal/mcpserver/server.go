// Package mcpserver exposes the bookmark collection as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nikbrunner/linkvault/internal/logger"
	"github.com/nikbrunner/linkvault/internal/model"
)

// Store is the record store the tools operate on. *vault.Vault implements it.
type Store interface {
	GetAll() []model.Bookmark
	GetByID(id string) (model.Bookmark, bool)
	GetByCategory(category string) []model.Bookmark
	GetRecent(limit int) []model.Bookmark
	Categories() []string
	Search(query string) []model.Bookmark
	SortBy(records []model.Bookmark, criterion model.SortCriterion) []model.Bookmark
	Add(ctx context.Context, input model.BookmarkInput) model.Bookmark
	Update(ctx context.Context, id string, input model.BookmarkInput) (model.Bookmark, bool)
	Delete(ctx context.Context, id string) bool
}

// Server wraps the MCP server with the bookmark tools.
type Server struct {
	mcp      *server.MCPServer
	store    Store
	log      logger.Logger
	handlers map[string]server.ToolHandlerFunc
}

// New creates the MCP server with every tool registered.
func New(store Store, version string, log logger.Logger) *Server {
	s := &Server{
		store:    store,
		log:      log,
		handlers: make(map[string]server.ToolHandlerFunc),
	}

	s.mcp = server.NewMCPServer(
		"LinkVault",
		version,
		server.WithToolCapabilities(false),
	)

	s.addTool(mcp.NewTool("list_bookmarks",
		mcp.WithDescription("List saved websites, newest first unless a sort is given."),
		mcp.WithString("category", mcp.Description("Only websites in this category")),
		mcp.WithString("sort", mcp.Description("One of default, name-asc, name-desc, date-new, date-old")),
	), s.listBookmarks)

	s.addTool(mcp.NewTool("search_bookmarks",
		mcp.WithDescription("Find websites whose name or URL contains the query (case-insensitive)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring to look for")),
	), s.searchBookmarks)

	s.addTool(mcp.NewTool("get_bookmark",
		mcp.WithDescription("Get one website by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Website id")),
	), s.getBookmark)

	s.addTool(mcp.NewTool("add_bookmark",
		mcp.WithDescription("Save a new website. The URL gets https:// when it has no scheme."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
		mcp.WithString("url", mcp.Required(), mcp.Description("Website URL")),
		mcp.WithString("category", mcp.Description("Category, e.g. ai, web, hacks")),
		mcp.WithString("description", mcp.Description("Short description")),
		mcp.WithString("thumbnail_url", mcp.Description("Custom image URL for the card")),
	), s.addBookmark)

	s.addTool(mcp.NewTool("update_bookmark",
		mcp.WithDescription("Change fields of a saved website. Omitted fields keep their value."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Website id")),
		mcp.WithString("name", mcp.Description("Display name")),
		mcp.WithString("url", mcp.Description("Website URL")),
		mcp.WithString("category", mcp.Description("Category")),
		mcp.WithString("description", mcp.Description("Short description")),
		mcp.WithString("thumbnail_url", mcp.Description("Custom image URL, empty to remove")),
	), s.updateBookmark)

	s.addTool(mcp.NewTool("delete_bookmark",
		mcp.WithDescription("Delete a saved website by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Website id")),
	), s.deleteBookmark)

	s.addTool(mcp.NewTool("recent_bookmarks",
		mcp.WithDescription("List the most recently added websites."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of websites (default 10)")),
	), s.recentBookmarks)

	s.addTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the categories in use, in first-seen order."),
	), s.listCategories)

	return s
}

func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.handlers[tool.Name] = handler
	s.mcp.AddTool(tool, handler)
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listBookmarks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	criterion, err := model.ParseSort(req.GetString("sort", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records := s.store.GetAll()
	if category := req.GetString("category", ""); category != "" {
		records = s.store.GetByCategory(category)
	}
	return jsonResult(s.store.SortBy(records, criterion))
}

func (s *Server) searchBookmarks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.store.Search(query))
}

func (s *Server) getBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, ok := s.store.GetByID(id)
	if !ok {
		return notFound(id), nil
	}
	return jsonResult(b)
}

func (s *Server) addBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(url) == "" {
		return mcp.NewToolResultError("name and url must not be empty"), nil
	}

	in := model.BookmarkInput{
		Name:        name,
		URL:         url,
		Category:    normalizeCategory(req.GetString("category", "")),
		Description: req.GetString("description", ""),
	}
	if thumb := strings.TrimSpace(req.GetString("thumbnail_url", "")); thumb != "" {
		in.ThumbnailURL = &thumb
	}

	b := s.store.Add(ctx, in)
	s.log.Info("bookmark added via mcp", logger.String("id", b.ID))
	return jsonResult(b)
}

func (s *Server) updateBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	current, ok := s.store.GetByID(id)
	if !ok {
		return notFound(id), nil
	}

	in := current.Input()
	args := req.GetArguments()
	if _, ok := args["name"]; ok {
		in.Name = req.GetString("name", in.Name)
	}
	if _, ok := args["url"]; ok {
		in.URL = req.GetString("url", in.URL)
	}
	if _, ok := args["category"]; ok {
		in.Category = normalizeCategory(req.GetString("category", in.Category))
	}
	if _, ok := args["description"]; ok {
		in.Description = req.GetString("description", in.Description)
	}
	if _, ok := args["thumbnail_url"]; ok {
		in.ThumbnailURL = nil
		if thumb := strings.TrimSpace(req.GetString("thumbnail_url", "")); thumb != "" {
			in.ThumbnailURL = &thumb
		}
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.URL) == "" {
		return mcp.NewToolResultError("name and url must not be empty"), nil
	}

	b, ok := s.store.Update(ctx, id, in)
	if !ok {
		return notFound(id), nil
	}
	s.log.Info("bookmark updated via mcp", logger.String("id", id))
	return jsonResult(b)
}

func (s *Server) deleteBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !s.store.Delete(ctx, id) {
		return notFound(id), nil
	}
	s.log.Info("bookmark deleted via mcp", logger.String("id", id))
	return mcp.NewToolResultText(fmt.Sprintf("deleted %s", id)), nil
}

func (s *Server) recentBookmarks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}
	return jsonResult(s.store.GetRecent(limit))
}

func (s *Server) listCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories := s.store.Categories()
	if categories == nil {
		categories = []string{}
	}
	return jsonResult(categories)
}

func notFound(id string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("website not found: %s", id))
}

func normalizeCategory(category string) string {
	return strings.TrimSpace(category)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
