/*
Command myrimark renders Myrimark documents to HTML.

	myrimark render notes.mm > notes.html
	myrimark render --tree notes.mm
	myrimark render --select "h1, h2" notes.mm
	myrimark render page.html -o out.html
	myrimark repl
	myrimark commands

Settings are read from an optional YAML file (--config) and may be
overridden by flags. Tracing is configured with keys "tracing.adapter"
("go" or "logrus") and "trace.<key>", e.g. "trace.myrimark.input: Debug".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/myrimark/input/myrimark"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'myrimark.cli'
func tracer() tracing.Trace {
	return tracing.Select("myrimark.cli")
}

// globalFlags are the flags shared by all sub-commands.
type globalFlags struct {
	config   string
	trace    string
	toggles  []string
	maxDepth int
}

var global globalFlags

// app is the state shared by all sub-commands, set up before any of them runs.
var app struct {
	conf   testconfig.Conf
	parser *myrimark.Parser
}

var rootCmd = &cobra.Command{
	Use:   "myrimark",
	Short: "Render Myrimark documents to HTML",
	Long:  "myrimark renders documents written in the Myrimark markup language to HTML.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return before(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&global.config, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&global.trace, "trace", "", "Trace level for Myrimark packages [Debug|Info|Error]")
	rootCmd.PersistentFlags().StringSliceVar(&global.toggles, "toggle", nil, "Global toggle active from the start (may be set multiple times)")
	rootCmd.PersistentFlags().IntVar(&global.maxDepth, "max-depth", 0, "Maximum nesting depth of groups, commands and inline styles")
	rootCmd.AddCommand(renderCommand(), replCommand(), commandsCommand())
}

func before(cmd *cobra.Command, args []string) error {
	overrides := make(map[string]string)
	if global.trace != "" {
		for _, key := range []string{"myrimark.input", "myrimark.dom", "myrimark.resources", "myrimark.cli"} {
			overrides["trace."+key] = global.trace
		}
	}
	if len(global.toggles) > 0 {
		overrides[myrimark.ConfToggles] = strings.Join(global.toggles, ",")
	}
	if global.maxDepth > 0 {
		overrides[myrimark.ConfMaxDepth] = strconv.Itoa(global.maxDepth)
	}
	conf, err := setupConfig(global.config, overrides)
	if err != nil {
		return err
	}
	app.conf = conf
	app.parser = myrimark.NewParser(myrimark.OptionsFrom(conf)...)
	tracer().Debugf("command %q set up", cmd.Name())
	return nil
}

func main() {
	initDisplay()
	if err := rootCmd.Execute(); err != nil {
		tracer().Errorf("%v", err)
		core.UserError(err)
		os.Exit(core.ExitCode(err))
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		pterm.DisableStyling()
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
