// cmd/member-qa/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"member-qa/internal/common/config"
	"member-qa/internal/common/logger"
)

var (
	configPath string
	verbose    bool

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "member-qa",
	Short: "Answer natural-language questions about members from their message log",
	Long: `member-qa reads the remote member message log and answers questions such as
"When is Layla planning her trip to London?" or "How many cars does Vikram Desai have?".

It runs as an HTTP service (serve), a one-shot command (ask) or an MCP tool
server on stdio (mcp).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFromFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}

		logCfg := logger.Config{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: cfg.Logging.OutputPaths(),
		}
		if verbose {
			logCfg.Level = "debug"
		}
		// stdout belongs to the answer or the JSON-RPC stream
		if cmd.Name() != "serve" {
			logCfg.OutputPaths = []string{"stderr"}
		}
		log = logger.NewStructured(logCfg).With(map[string]interface{}{
			"app":     cfg.App.Name,
			"version": cfg.App.Version,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file (default: configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, askCmd, mcpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
