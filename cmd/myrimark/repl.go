package main

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/myrimark/input/myrimark"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Render Myrimark interactively",
		Long: `Enter Myrimark text line by line. An empty line renders what has been
entered so far. Lines starting with "::" control the REPL, see "::help".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl, err := readline.NewEx(&readline.Config{
				Prompt:          "mm > ",
				AutoComplete:    completer{app.parser},
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				return err
			}
			defer repl.Close()
			pterm.Info.Println("Welcome to Myrimark")
			pterm.Info.Println("Quit with <ctrl>D")
			intp := &Intp{repl: repl, parser: app.parser, out: os.Stdout}
			intp.REPL()
			return nil
		},
	}
}

// Intp is our interpreter object.
type Intp struct {
	repl   *readline.Instance
	parser *myrimark.Parser
	out    io.Writer
	buffer []string
	tree   bool
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err == readline.ErrInterrupt {
			intp.buffer = intp.buffer[:0]
			continue
		} else if err != nil { // io.EOF
			break
		}
		if intp.execute(line) {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// execute handles one line of input. It returns true if the user wants to quit.
func (intp *Intp) execute(line string) bool {
	if strings.HasPrefix(line, "::") {
		return intp.control(strings.TrimSpace(line[2:]))
	}
	if strings.TrimSpace(line) != "" {
		intp.buffer = append(intp.buffer, line)
		return false
	}
	intp.flush()
	return false
}

// flush renders and clears the input entered so far.
func (intp *Intp) flush() {
	if len(intp.buffer) == 0 {
		return
	}
	source := strings.Join(intp.buffer, "\n")
	intp.buffer = intp.buffer[:0]
	doc := intp.parser.Parse(source)
	if doc == nil {
		pterm.Info.Println("(nothing to render)")
		return
	}
	if intp.tree {
		doc.Dump(intp.out)
		return
	}
	s, err := doc.HTMLString()
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Fprintln(intp.out, s)
}

func (intp *Intp) control(cmd string) bool {
	tracer().Debugf("REPL command %q", cmd)
	switch cmd {
	case "quit", "q":
		return true
	case "tree":
		intp.tree = !intp.tree
		pterm.Info.Printfln("tree output is %s", onOff(intp.tree))
	case "clear":
		intp.buffer = intp.buffer[:0]
	case "commands":
		listCommands(intp.parser)
	default:
		help()
	}
	return false
}

func help() {
	pterm.Info.Println("REPL commands")
	pterm.Println(`
	::tree      switch between HTML and tree output
	::clear     discard input entered so far
	::commands  list local and global commands
	::quit      leave the REPL

	An empty line renders the input entered so far.
	Press <tab> to complete command names after ":" or "\".`)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// completer completes Myrimark command names for readline.
type completer struct {
	parser *myrimark.Parser
}

// Do is part of interface readline.AutoCompleter.
func (c completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && !isSpace(line[start-1]) {
		start--
	}
	word := string(line[start:pos])
	if i := strings.LastIndexAny(word, `:\`); i > 0 {
		word = word[i:] // e.g. "$begin" does not complete, ":begin" does
	}
	if word == "" || (word[0] != ':' && word[0] != '\\') {
		return nil, 0
	}
	var candidates [][]rune
	for _, m := range c.parser.Complete(word) {
		candidates = append(candidates, []rune(m[len(word):]))
	}
	return candidates, len([]rune(word))
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
