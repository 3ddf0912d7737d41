// cmd/member-qa/mcp.go
package main

import (
	"github.com/spf13/cobra"

	"member-qa/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the ask_member_question tool over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _ := newAnswerService(cfg, log, nil, nil)
		s := mcp.NewServer(mcp.ServerConfig{
			Answerer: svc,
			Logger:   log,
			Version:  cfg.App.Version,
		})
		log.Info("mcp server starting on stdio", nil)
		return mcp.ServeStdio(s)
	},
}
