// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the site content as read-only tools via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/averyk/folio/internal/content"
	"github.com/averyk/folio/internal/index"
	"github.com/averyk/folio/internal/storage"
)

// Server wraps the MCP server with content tools. All tools are
// read-only: content changes go through the filesystem, not through
// MCP clients.
type Server struct {
	mcp    *server.MCPServer
	loader *content.Loader
	store  storage.Provider
	db     *index.DB
	ownsDB bool
}

// New creates an MCP server over an already constructed store and index.
func New(store storage.Provider, db *index.DB) *Server {
	s := &Server{
		loader: content.NewLoader(store, slog.Default()),
		store:  store,
		db:     db,
	}

	s.mcp = server.NewMCPServer(
		"Folio",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_posts",
		mcp.WithDescription("Full-text search through blog post titles and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read the raw Markdown of a blog post, frontmatter included."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug (e.g. getting-started or 2025/launch)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List published blog posts, newest first."),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("list_ventures",
		mcp.WithDescription("List ventures in display order."),
	), s.listVentures)

	s.mcp.AddTool(mcp.NewTool("list_experience",
		mcp.WithDescription("List work experience entries in display order."),
	), s.listExperience)

	return s
}

// NewFromPaths opens the content store and the SQLite index at the given
// paths and builds a server that owns both. Close releases the index.
func NewFromPaths(contentPath, sqlitePath string) (*Server, error) {
	store, err := storage.NewFS(contentPath)
	if err != nil {
		return nil, fmt.Errorf("mcpserver: init storage: %w", err)
	}
	db, err := index.Open(sqlitePath)
	if err != nil {
		return nil, fmt.Errorf("mcpserver: init index: %w", err)
	}
	if err := index.Sync(db, store, slog.Default()); err != nil {
		slog.Warn("mcpserver: initial sync failed", slog.String("error", err.Error()))
	}
	s := New(store, db)
	s.ownsDB = true
	return s, nil
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// Close releases the index when the server owns it.
func (s *Server) Close() {
	if s.ownsDB && s.db != nil {
		s.db.Close()
	}
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(content.DirPosts + "/" + slug + ".md")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := s.loader.Posts()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	posts = content.Published(posts)
	content.SortPosts(posts)

	type item struct {
		Slug     string `json:"slug"`
		Title    string `json:"title"`
		Date     string `json:"date"`
		Category string `json:"category"`
	}
	items := make([]item, 0, len(posts))
	for _, p := range posts {
		items = append(items, item{
			Slug:     p.Slug,
			Title:    p.Title,
			Date:     p.Date.Format("2006-01-02"),
			Category: p.Category,
		})
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listVentures(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ventures, err := s.loader.Ventures()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content.SortVentures(ventures)
	out, _ := json.MarshalIndent(ventures, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listExperience(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.loader.Experience()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content.SortExperience(entries)
	out, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
