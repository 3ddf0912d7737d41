// Package mcp exposes the member question answerer as a Model Context Protocol tool
// over stdio, so assistants can ask about members without going through HTTP.
package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"member-qa/internal/common/logger"
	"member-qa/internal/qa"
)

const ToolAskMemberQuestion = "ask_member_question"

// Answerer is the answer pipeline.
type Answerer interface {
	Answer(ctx context.Context, question string) qa.Result
}

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Answerer Answerer
	Logger   logger.Logger
	Version  string
}

// NewServer creates an MCP server with the member question tool registered.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := server.NewMCPServer(
		"member-qa",
		ver,
		server.WithToolCapabilities(false),
	)
	registerAskTool(s, cfg.Answerer, log)
	return s
}

// ServeStdio blocks serving JSON-RPC on stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func registerAskTool(s *server.MCPServer, answerer Answerer, log logger.Logger) {
	tool := mcp.NewTool(ToolAskMemberQuestion,
		mcp.WithDescription("Answer a natural-language question about a member (trips, cars, favorite restaurants, phone number) from the member message log."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Question naming the member, e.g. \"When is Layla planning her trip to London?\""),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil || strings.TrimSpace(question) == "" {
			return mcp.NewToolResultError("question is required"), nil
		}

		res := answerer.Answer(logger.IntoContext(ctx, log), question)
		log.Debug("mcp question answered", map[string]interface{}{
			"intent":  string(res.Outcome.Intent),
			"outcome": string(res.Outcome.Status),
		})
		return mcp.NewToolResultText(res.Answer), nil
	})
}
