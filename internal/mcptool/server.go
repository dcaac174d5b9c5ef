// Package mcptool exposes the analysis pipeline as MCP tools over stdio.
package mcptool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"newspulse/internal/analysis"
	"newspulse/internal/budget"
	"newspulse/internal/dates"
)

// Server wires the pipeline behind the two inbound tool operations.
type Server struct {
	pipeline *analysis.Pipeline
	log      zerolog.Logger
	version  string
}

// NewServer builds an MCP tool server.
func NewServer(pipeline *analysis.Pipeline, log zerolog.Logger, version string) *Server {
	return &Server{pipeline: pipeline, log: log, version: version}
}

type analyzeDayArgs struct {
	Date         string `json:"date" jsonschema:"Date to analyze. Accepts YYYY-MM-DD or natural language like 'yesterday'."`
	AllowOverage *bool  `json:"allow_overage,omitempty" jsonschema:"Permit spending past the monthly token allowance for this call."`
}

type analyzeMonthArgs struct {
	From         string `json:"from" jsonschema:"First month of the range, YYYY-MM."`
	To           string `json:"to" jsonschema:"Last month of the range (inclusive), YYYY-MM."`
	AllowOverage *bool  `json:"allow_overage,omitempty" jsonschema:"Permit spending past the monthly token allowance for this call."`
}

// Run serves the tools on stdio until the context is done.
func (s *Server) Run(ctx context.Context) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "newspulse", Version: s.version}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "analyze_day",
		Description: "Fetch and analyze news headlines for a single day: relevance filtering, " +
			"sentiment and attention scoring, and a per-political-leaning breakdown.",
		Annotations: &mcp.ToolAnnotations{Title: "Analyze Day"},
	}, s.analyzeDay)

	mcp.AddTool(srv, &mcp.Tool{
		Name: "analyze_month",
		Description: "Analyze news headlines for each calendar month in an inclusive YYYY-MM range. " +
			"Months that fail are reported inline; the rest of the range still completes.",
		Annotations: &mcp.ToolAnnotations{Title: "Analyze Month Range"},
	}, s.analyzeMonth)

	s.log.Info().Str("version", s.version).Msg("serving MCP tools on stdio")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) analyzeDay(ctx context.Context, _ *mcp.CallToolRequest, args analyzeDayArgs) (*mcp.CallToolResult, *analysis.Report, error) {
	day, err := dates.ParseDay(args.Date, timeNow())
	if err != nil {
		return nil, nil, err
	}

	report, err := s.pipeline.AnalyzeDay(ctx, day, analysis.RunOptions{AllowOverage: args.AllowOverage})
	if err != nil {
		return s.toolError(err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: analysis.DaySummary(report)}},
	}, report, nil
}

func (s *Server) analyzeMonth(ctx context.Context, _ *mcp.CallToolRequest, args analyzeMonthArgs) (*mcp.CallToolResult, *analysis.MonthRangeReport, error) {
	from, err := dates.ParseMonth(args.From)
	if err != nil {
		return nil, nil, err
	}
	to, err := dates.ParseMonth(args.To)
	if err != nil {
		return nil, nil, err
	}

	report, err := s.pipeline.AnalyzeMonths(ctx, from, to, analysis.RunOptions{AllowOverage: args.AllowOverage})
	if err != nil {
		return nil, nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: analysis.MonthRangeSummary(report)}},
	}, report, nil
}

// toolError keeps budget exhaustion distinguishable from provider failures
// in the tool output, so the caller can decide to wait or request an overage
// override rather than retrying blindly.
func (s *Server) toolError(err error) (*mcp.CallToolResult, *analysis.Report, error) {
	var exhausted *budget.ExhaustedError
	if errors.As(err, &exhausted) {
		return nil, nil, fmt.Errorf("resource exhausted: %w", err)
	}
	return nil, nil, err
}
