package myrimark

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/npillmayer/myrimark/core/parameters"
	"github.com/npillmayer/myrimark/engine/dom"
)

// paragraph classifies a paragraph and appends the resulting nodes to sect.
func (env *Env) paragraph(lines []string, sect *dom.Node) {
	kind := Classify(lines)
	tracer().Debugf("%d line(s) of kind %s", len(lines), kind)
	switch kind {
	case Plain:
		sect.AppendChild(env.plain(lines))
	case UnorderedList, OrderedList:
		sect.AppendChild(env.list(lines, kind == OrderedList))
	case Checklist:
		sect.AppendChild(env.checklist(lines))
	case Header:
		env.headers(lines, sect)
	case CodeBlock:
		sect.AppendChild(codeBlock(lines))
	case LocalCommandPara:
		env.localCommands(lines, sect)
	case GlobalCommandPara:
		env.globalCommands(lines, sect)
	case Null:
	}
}

func (env *Env) plain(lines []string) *dom.Node {
	if !env.regs.IsActive(parameters.EveryLineBreaks) {
		return dom.NewParagraph(env.Format(strings.Join(lines, " ")))
	}
	div := dom.NewContainer()
	for _, line := range lines {
		div.AppendChild(dom.NewParagraph(env.Format(line)))
	}
	return div
}

func (env *Env) list(lines []string, ordered bool) *dom.Node {
	list := dom.NewList(ordered)
	for _, line := range lines {
		if item, ok := itemContent(line, "*-"); ok {
			list.AppendChild(dom.NewListItem(env.Format(item)))
		}
	}
	return list
}

func (env *Env) checklist(lines []string) *dom.Node {
	form := dom.NewChecklist()
	for _, line := range lines {
		if item, ok := itemContent(line, ">"); ok {
			form.AppendChild(dom.NewCheckItem(env.Format(item)))
		}
	}
	return form
}

// itemContent returns the text of a line after the first of the marker
// characters and the spaces following it.
func itemContent(line string, markers string) (string, bool) {
	i := strings.IndexAny(line, markers)
	if i < 0 {
		return "", false
	}
	return strings.TrimLeft(line[i+1:], " "), true
}

var headerLine = regexp.MustCompile(`^(#+) *(.*)`)

func (env *Env) headers(lines []string, sect *dom.Node) {
	for _, line := range lines {
		m := headerLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level, text := len(m[1]), m[2]
		if level > parameters.MaxHeaderLevel {
			tracer().Infof("header level %d reduced to %d", level, parameters.MaxHeaderLevel)
			level = parameters.MaxHeaderLevel
		}
		var index string
		if env.regs.IsActive(parameters.AutoIndexHeaders) {
			index = env.regs.NextHeader(level)
			text = index + " " + text
		}
		sect.AppendChild(dom.NewHeader(level, index, env.Format(text)))
	}
}

// codeBlock keeps the text of a code block, without inline formatting.
// A leading backtick is removed from each line, as are `/sp/` markers.
func codeBlock(lines []string) *dom.Node {
	code := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, "`") {
			line = strings.TrimLeft(line[1:], " ")
		}
		code[i] = removeUnescaped(line, "/sp/")
	}
	return dom.NewCodeBlock(strings.ReplaceAll(strings.Join(code, "\n"), "<", "&lt;"))
}

func removeUnescaped(s string, marker string) string {
	if !strings.Contains(s, marker) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if unescapedAt(s, i, marker) {
			i += len(marker)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// --- Commands --------------------------------------------------------------

var (
	localCommandLine = regexp.MustCompile(`:(\w+)(.*)`)
	commandParameter = regexp.MustCompile(`\{(.+?)\}`)
	stashToken       = regexp.MustCompile(`^0x\d+$`)
)

func (env *Env) localCommands(lines []string, sect *dom.Node) {
	container := sect
	if p := sect.Parent(); p != nil {
		container = p
	}
	for _, line := range lines {
		m := localCommandLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		args := env.parameters(m[2])
		sect.AppendChild(env.invoke(m[1], container, args))
	}
}

// parameters extracts the parameters of a command and resolves stashed
// strings.
func (env *Env) parameters(s string) []string {
	matches := commandParameter.FindAllStringSubmatch(s, -1)
	args := make([]string, len(matches))
	for i, m := range matches {
		args[i] = m[1]
		if stashToken.MatchString(m[1]) {
			if str, ok := env.strings.Lookup(m[1]); ok {
				args[i] = str
			}
		}
	}
	return args
}

// invoke calls a local command. Unknown commands, and commands which panic,
// result in an in-band error message.
func (env *Env) invoke(name string, container *dom.Node, args []string) (node *dom.Node) {
	cmd, ok := env.parser.commands.lookup(name)
	if !ok {
		tracer().Infof("unknown local command %q", name)
		return dom.NewInvalid(fmt.Sprintf("%s (%s) is not a valid local command.", name, jsonList(args)))
	}
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("local command %q failed: %v", name, r)
			node = dom.NewInvalid(fmt.Sprintf("%s (%s) failed.", name, jsonList(args)))
		}
	}()
	return cmd.Invoke(env, container, args)
}

func (env *Env) globalCommands(lines []string, sect *dom.Node) {
	for _, line := range lines {
		name := strings.TrimPrefix(line, `\`)
		switch cmd := lookupGlobal(name).(type) {
		case parameters.Toggle:
			on := env.regs.Flip(cmd)
			tracer().Debugf("global toggle %s is %v", cmd, on)
		case globalFunction:
			cmd(env.regs)
		default:
			tracer().Infof("invalid global command %q", name)
			p := dom.NewParagraph("")
			p.AppendChild(dom.NewInvalid(fmt.Sprintf("INVALID GLOBAL COMMAND {%s}", name)))
			sect.AppendChild(p)
		}
	}
}
