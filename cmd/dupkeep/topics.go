package main

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dupkeep/pkg/cobrax/topics"
)

//go:embed docs
var docsFS embed.FS

var topicsCmd = &cobra.Command{
	Use:   "topics [topic]",
	Short: "Show extended documentation topics",
	Long: `Without arguments, lists the available documentation topics.
With a topic name, renders that topic for the terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub, err := fs.Sub(docsFS, "docs")
		if err != nil {
			return err
		}
		tm, err := topics.New(sub, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		})
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Available topics:")
			for _, name := range tm.ListTopics() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		}

		topic, ok := tm.GetTopic(args[0])
		if !ok {
			return fmt.Errorf("unknown topic %q (available: %s)", args[0], strings.Join(tm.ListTopics(), ", "))
		}
		fmt.Fprint(cmd.OutOrStdout(), tm.Render(topic))
		return nil
	},
}
