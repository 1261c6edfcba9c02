package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/mcp-syllabus-reader/internal/config"
	"github.com/a3tai/mcp-syllabus-reader/internal/descriptions"
	"github.com/a3tai/mcp-syllabus-reader/internal/documents"
)

const (
	// EndpointPath is where server mode accepts streamable HTTP requests
	EndpointPath = "/mcp"

	shutdownTimeout = 10 * time.Second
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *documents.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, service *documents.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("document service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // tool list is fixed at startup
	)

	s := &Server{
		config:    cfg,
		service:   service,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractEventsTool := mcp.NewTool(
		descriptions.ToolExtractEvents,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolExtractEvents)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the syllabus (.pdf, .docx, .odt, .txt or .md)"),
		),
		mcp.WithString("term_start",
			mcp.Description("First day of the term as YYYY-MM-DD; anchors dates written without a year"),
		),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone for the events, e.g. America/New_York"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: "+strings.Join(documents.OutputFormats(), ", ")),
			mcp.Enum(documents.OutputFormats()...),
		),
	)
	s.mcpServer.AddTool(extractEventsTool, s.handleExtractEvents)

	searchDirectoryTool := mcp.NewTool(
		descriptions.ToolSearchDirectory,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolSearchDirectory)),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleSearchDirectory)

	serverInfoTool := mcp.NewTool(
		descriptions.ToolServerInfo,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolServerInfo)),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleExtractEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := documents.ExtractEventsRequest{
		Path:      path,
		TermStart: optionalString(request, "term_start"),
		Timezone:  optionalString(request, "timezone"),
		Format:    optionalString(request, "format"),
	}

	result, err := s.service.ExtractEvents(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if s.config.IsDebug() {
		log.Printf("Extracted %d event(s) from %s", result.EventCount, result.Path)
	}

	return mcp.NewToolResultText(result.Rendered), nil
}

func (s *Server) handleSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	req := documents.SearchDirectoryRequest{
		Directory: optionalString(request, "directory"),
		Query:     optionalString(request, "query"),
	}

	result, err := s.service.SearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No syllabus documents found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = formatSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.ServerInfo(s.config.ServerName, s.config.Version)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatServerInfoResult(result)), nil
}

func optionalString(request mcp.CallToolRequest, key string) string {
	if v, ok := request.GetArguments()[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Formatting methods
func formatSearchDirectoryResult(result *documents.SearchDirectoryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d syllabus document(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		fmt.Fprintf(&b, "Search query: %s\n", result.SearchQuery)
	}
	b.WriteString("\nFiles:\n")

	for i, file := range result.Files {
		fmt.Fprintf(&b, "%d. %s\n", i+1, file.Name)
		fmt.Fprintf(&b, "   Path: %s\n", file.Path)
		fmt.Fprintf(&b, "   Format: %s\n", file.Format)
		fmt.Fprintf(&b, "   Size: %d bytes\n", file.Size)
		fmt.Fprintf(&b, "   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatServerInfoResult(result *documents.ServerInfoResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	fmt.Fprintf(&b, "📁 Default Directory: %s\n", result.DefaultDirectory)
	fmt.Fprintf(&b, "📏 Max File Size: %d MB\n", result.MaxFileSize/(1024*1024))
	fmt.Fprintf(&b, "🕒 Default Timezone: %s\n", result.DefaultTimezone)
	if result.DefaultTermStart != "" {
		fmt.Fprintf(&b, "📅 Default Term Start: %s\n", result.DefaultTermStart)
	}
	b.WriteString("\n")

	if len(result.DirectoryContents) > 0 {
		fmt.Fprintf(&b, "📂 Directory Contents (%d syllabus documents found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 {
				fmt.Fprintf(&b, "   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			fmt.Fprintf(&b, "   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("📂 Directory Contents: No syllabus documents found in default directory\n\n")
	}

	b.WriteString("🛠️  Available Tools:\n")
	for _, tool := range result.AvailableTools {
		fmt.Fprintf(&b, "\n• %s\n", tool.Name)
		fmt.Fprintf(&b, "  Usage: %s\n", tool.Usage)
		fmt.Fprintf(&b, "  Parameters: %s\n", tool.Parameters)
	}

	fmt.Fprintf(&b, "\n📄 Supported Documents: %s\n", strings.Join(result.SupportedFormats, ", "))
	fmt.Fprintf(&b, "🧾 Output Formats: %s\n", strings.Join(result.OutputFormats, ", "))

	b.WriteString("\n" + result.UsageGuidance)

	return b.String()
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting syllabus MCP server in stdio mode")
		log.Printf("Syllabus directory: %s", s.config.SyllabusDirectory)
		log.Printf("Default timezone: %s, term start: %q", s.config.Timezone, s.config.TermStart)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// httpHandler routes the streamable HTTP transport at EndpointPath
func (s *Server) httpHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(EndpointPath, server.NewStreamableHTTPServer(s.mcpServer))
	return mux
}

// runServerMode serves MCP over streamable HTTP until ctx is cancelled
func (s *Server) runServerMode(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.httpHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting syllabus MCP server on http://%s%s", httpServer.Addr, EndpointPath)
	log.Printf("Syllabus directory: %s", s.config.SyllabusDirectory)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		<-errCh
		return nil
	}
}
