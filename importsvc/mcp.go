package importsvc

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/schedimport/kit"
	"github.com/hazyhaar/schedimport/schedparse"
)

// RegisterMCP registers the import tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerPreviewTool(srv)
	s.registerTypesTool(srv)
	s.registerRunsTool(srv)
	s.registerParseTimeTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	sch := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sch["required"] = required
	}
	return sch
}

// --- preview ---

type previewReq struct {
	Path       string `json:"path"`
	ImportType string `json:"import_type"`
	Kind       string `json:"kind"`
}

func (s *Service) registerPreviewTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "schedimport_preview",
		Description: "Parse a schedule document (track PDF, department PDF or spreadsheet) and return the extracted events or items with warnings. Nothing is stored but the run log entry.",
		InputSchema: inputSchema(map[string]any{
			"path":        map[string]any{"type": "string", "description": "Path of the document to parse"},
			"import_type": map[string]any{"type": "string", "enum": []string{string(schedparse.ImportTrack), string(schedparse.ImportDepartment)}},
			"kind":        map[string]any{"type": "string", "enum": []string{string(schedparse.KindPDF), string(schedparse.KindSpreadsheet)}, "description": "Optional; detected from the file name"},
		}, []string{"path", "import_type"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*previewReq)
		if r.Path == "" {
			return nil, fmt.Errorf("path is required")
		}
		data, err := os.ReadFile(r.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", r.Path, err)
		}
		return s.Preview(ctx, Request{
			ImportType: schedparse.ImportType(r.ImportType),
			FileName:   r.Path,
			Kind:       schedparse.SourceKind(r.Kind),
			Data:       data,
		})
	}

	kit.RegisterMCPTool(srv, tool, kit.Logging(s.logger, tool.Name)(endpoint), kit.DecodeJSON[previewReq]())
}

// --- types ---

func (s *Service) registerTypesTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "schedimport_types",
		Description: "List the supported import types with their accepted document kinds.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(_ context.Context, _ any) (any, error) {
		return map[string]any{"types": ImportTypes()}, nil
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- runs ---

type runsReq struct {
	Limit int    `json:"limit"`
	RunID string `json:"run_id"`
}

func (s *Service) registerRunsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "schedimport_runs",
		Description: "List recent import runs from the run log, or fetch one by run_id.",
		InputSchema: inputSchema(map[string]any{
			"limit":  map[string]any{"type": "integer", "description": "Max runs (default 50)"},
			"run_id": map[string]any{"type": "string", "description": "Fetch a single run"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*runsReq)
		if s.runs == nil {
			return nil, fmt.Errorf("run log disabled")
		}
		if r.RunID != "" {
			return s.runs.Get(ctx, r.RunID)
		}
		runs, err := s.runs.Recent(ctx, r.Limit)
		if err != nil {
			return nil, err
		}
		return map[string]any{"runs": runs}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, kit.DecodeJSON[runsReq]())
}

// --- parse_time ---

type parseTimeReq struct {
	Value string `json:"value"`
}

// TimeParse is the answer of schedimport_parse_time.
type TimeParse struct {
	Input   string `json:"input"`
	Valid   bool   `json:"valid"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Display string `json:"display,omitempty"`
}

// ParseTimeText normalizes a single time or a "start - end" range.
func ParseTimeText(value string) TimeParse {
	out := TimeParse{Input: value}
	if t, ok := schedparse.ParseTime(value); ok {
		out.Valid, out.Start, out.Display = true, t, schedparse.Format12Hour(t)
		return out
	}
	if start, end, ok := schedparse.ParseTimeRange(value); ok {
		out.Valid, out.Start, out.End = true, start, end
		out.Display = schedparse.Format12Hour(start) + " - " + schedparse.Format12Hour(end)
	}
	return out
}

func (s *Service) registerParseTimeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "schedimport_parse_time",
		Description: "Normalize a schedule time (\"8:00 AM\", \"14:00\") or range (\"8:00 AM - 9:15 AM\") to 24-hour HH:mm.",
		InputSchema: inputSchema(map[string]any{
			"value": map[string]any{"type": "string", "description": "Time or time range text"},
		}, []string{"value"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		return ParseTimeText(req.(*parseTimeReq).Value), nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, kit.DecodeJSON[parseTimeReq]())
}
