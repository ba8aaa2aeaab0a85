// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the site content for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/catenary/site/internal/document"
	"github.com/catenary/site/internal/render"
	"github.com/catenary/site/internal/siteservice"
)

const (
	uriContentFormat = "catenary://content-format"
	uriWhitepaper    = "catenary://whitepaper"

	snippetRadius = 80
	maxHits       = 20
)

// Server wraps the MCP server with the site tools.
type Server struct {
	mcp *server.MCPServer
	svc *siteservice.Service
}

// New creates a new MCP server with all tools registered. svc must have
// content loaded before tools are called.
func New(svc *siteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Catenary",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List the site pages with their SEO metadata and JSON-LD."),
	), s.listPages)

	s.mcp.AddTool(mcp.NewTool("get_page_metadata",
		mcp.WithDescription("Return the resolved title, description, canonical URL, Open Graph fields and JSON-LD of one page."),
		mcp.WithString("route", mcp.Required(), mcp.Description("Page route, e.g. / or /whitepaper")),
	), s.getPageMetadata)

	s.mcp.AddTool(mcp.NewTool("list_sections",
		mcp.WithDescription("List the whitepaper sections in reading order."),
	), s.listSections)

	s.mcp.AddTool(mcp.NewTool("read_section",
		mcp.WithDescription("Read one whitepaper section as Markdown."),
		mcp.WithString("section", mcp.Required(),
			mcp.Description("Section number (e.g. 4), full title, or \"abstract\"")),
	), s.readSection)

	s.mcp.AddTool(mcp.NewTool("read_whitepaper",
		mcp.WithDescription("Read the whole whitepaper as Markdown."),
	), s.readWhitepaper)

	s.mcp.AddTool(mcp.NewTool("search_whitepaper",
		mcp.WithDescription("Case-insensitive text search through the whitepaper. Returns matching sections with a snippet."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchWhitepaper)

	s.mcp.AddTool(mcp.NewTool("get_content_contract",
		mcp.WithDescription("Returns the YAML content format. Call this before proposing content edits."),
	), s.getContentContract)

	s.mcp.AddResource(
		mcp.NewResource(uriContentFormat, "Content Format Contract",
			mcp.WithResourceDescription("YAML block format of the site content."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContentFormatResource,
	)
	s.mcp.AddResource(
		mcp.NewResource(uriWhitepaper, "Catenary Whitepaper",
			mcp.WithResourceDescription("The whitepaper rendered as Markdown."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readWhitepaperResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// SectionSummary is one entry of list_sections.
type SectionSummary struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

// SearchHit is one entry of search_whitepaper.
type SearchHit struct {
	Section string `json:"section"`
	Snippet string `json:"snippet"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages, err := s.svc.Pages()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(pages)
}

func (s *Server) getPageMetadata(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	route, err := req.RequireString("route")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	info, err := s.svc.PageInfo(route)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", route)), nil
	}
	return jsonResult(info)
}

func (s *Server) sections() ([]document.Node, error) {
	page, err := s.svc.Whitepaper()
	if err != nil {
		return nil, err
	}
	return page.Article.Sections(), nil
}

func (s *Server) listSections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sections, err := s.sections()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]SectionSummary, 0, len(sections))
	for i, sec := range sections {
		out = append(out, SectionSummary{Index: i, Title: document.SectionTitle(sec)})
	}
	return jsonResult(out)
}

func (s *Server) readSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	want, err := req.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sections, err := s.sections()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, sec := range sections {
		if matchSection(document.SectionTitle(sec), want) {
			return mcp.NewToolResultText(render.Markdown{}.String(sec)), nil
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("section not found: %s", want)), nil
}

// matchSection accepts the full title or its leading number, ignoring case.
func matchSection(title, want string) bool {
	want = strings.TrimSpace(want)
	if strings.EqualFold(title, want) {
		return true
	}
	if _, err := strconv.Atoi(want); err != nil {
		return false
	}
	num, _, _ := strings.Cut(title, " ")
	return num == want
}

func (s *Server) readWhitepaper(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	md, err := s.svc.Markdown()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(md.Body)), nil
}

func (s *Server) searchWhitepaper(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return mcp.NewToolResultError("query is empty"), nil
	}
	sections, err := s.sections()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hits := []SearchHit{}
	for _, sec := range sections {
		if snippet, ok := findSnippet(document.PlainText(sec), query); ok {
			hits = append(hits, SearchHit{Section: document.SectionTitle(sec), Snippet: snippet})
			if len(hits) == maxHits {
				break
			}
		}
	}
	return jsonResult(hits)
}

// findSnippet returns the text around the first case-insensitive match.
func findSnippet(text, query string) (string, bool) {
	lower := strings.ToLower(text)
	i := strings.Index(lower, strings.ToLower(query))
	if i < 0 {
		return "", false
	}
	start, end := i-snippetRadius, i+len(query)+snippetRadius
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	// Keep the cut on rune boundaries.
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return strings.TrimSpace(text[start:end]), true
}

func (s *Server) getContentContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ContentFormatContract), nil
}

func (s *Server) readContentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uriContentFormat,
			MIMEType: "text/markdown",
			Text:     ContentFormatContract,
		},
	}, nil
}

func (s *Server) readWhitepaperResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	md, err := s.svc.Markdown()
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uriWhitepaper,
			MIMEType: "text/markdown",
			Text:     string(md.Body),
		},
	}, nil
}
