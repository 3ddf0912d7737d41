// cmd/member-qa/ask.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question and print the answer",
	Example: `  member-qa ask "When is Layla planning her trip to London?"
  member-qa ask How many cars does Vikram Desai have`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("question is required")
		}

		svc, _ := newAnswerService(cfg, log, nil, nil)
		res := svc.Answer(cmd.Context(), question)
		fmt.Fprintln(cmd.OutOrStdout(), res.Answer)
		return nil
	},
}
