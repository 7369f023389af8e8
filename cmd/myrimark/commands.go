package main

import (
	"strings"

	"github.com/npillmayer/myrimark/input/myrimark"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func commandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commands [PREFIX]",
		Short: "List the commands known to the parser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				for _, m := range app.parser.Complete(args[0]) {
					pterm.Println(m)
				}
				return nil
			}
			listCommands(app.parser)
			return nil
		},
	}
}

func listCommands(p *myrimark.Parser) {
	pterm.Info.Println("Local commands")
	pterm.Println(columns(p.Complete(":")))
	pterm.Info.Println("Global commands")
	pterm.Println(columns(p.Complete(`\`)))
}

func columns(names []string) string {
	const perLine = 4
	var b strings.Builder
	for i, name := range names {
		if i%perLine == 0 {
			b.WriteString("\t")
		}
		b.WriteString(name)
		if i%perLine == perLine-1 || i == len(names)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(strings.Repeat(" ", max(1, 22-len(name))))
		}
	}
	return b.String()
}
