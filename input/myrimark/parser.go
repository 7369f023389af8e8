package myrimark

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/npillmayer/myrimark/core/parameters"
	"github.com/npillmayer/myrimark/engine/dom"
	"github.com/npillmayer/myrimark/input/myrimark/inline"
	"github.com/npillmayer/myrimark/input/myrimark/segment"
)

// Parser parses Myrimark documents. A Parser holds configuration only and
// may be used by more than one goroutine at a time. Every call to Parse
// operates on state of its own.
type Parser struct {
	maxDepth int
	toggles  []parameters.Toggle
	commands *registry
}

// Option configures a parser.
type Option func(*Parser)

// WithMaxDepth limits the nesting of groups, centered sections, repetitions
// and inline markup. The default is inline.DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithToggles switches global toggles on at the start of every parse, as
// if the document started with the corresponding global commands.
// Unknown names are ignored.
func WithToggles(names ...string) Option {
	return func(p *Parser) {
		for _, name := range names {
			name = strings.TrimPrefix(strings.TrimSpace(name), `\`)
			if name == "" {
				continue
			}
			if !parameters.IsToggle(name) {
				tracer().Errorf("unknown toggle %q ignored", name)
				continue
			}
			p.toggles = append(p.toggles, parameters.Toggle(name))
		}
	}
}

// WithCommand adds a local command to a parser. A built-in command of the
// same name is replaced. name must consist of word characters only.
func WithCommand(name string, cmd LocalCommand) Option {
	return func(p *Parser) {
		if cmd == nil || !commandName.MatchString(name) {
			tracer().Errorf("cannot register local command %q", name)
			return
		}
		p.commands.register(name, cmd)
	}
}

var commandName = regexp.MustCompile(`^\w+$`)

// NewParser creates a parser for Myrimark documents.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxDepth: inline.DefaultMaxDepth,
		commands: builtins.clone(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses a Myrimark document with a default parser.
func Parse(source string) *dom.Node {
	return defaultParser.Parse(source)
}

// Parse parses a Myrimark document and returns a tree of nodes. The root of
// the tree is a container with a container for each group or run of text
// of the document. If the document does not produce any content, Parse
// returns nil.
func (p *Parser) Parse(source string) *dom.Node {
	return p.newEnv(0).parseDocument(source)
}

func (p *Parser) newEnv(depth int) *Env {
	return &Env{
		parser:  p,
		regs:    parameters.NewRegisters(p.toggles...),
		strings: NewStringStash(),
		objects: NewObjectStash(),
		format:  inline.New(p.maxDepth),
		depth:   depth,
	}
}

// --- Environment -----------------------------------------------------------

// Env is the state of a single parse: the stashes, the global toggles and
// header counters, and the current nesting depth. Local commands receive the
// Env of the parse which invokes them.
type Env struct {
	parser  *Parser
	regs    *parameters.Registers
	strings *StringStash
	objects *ObjectStash
	format  *inline.Formatter
	depth   int
}

// Registers returns the global toggles and header counters of the parse.
func (env *Env) Registers() *parameters.Registers {
	return env.regs
}

// Strings returns the string stash of the parse.
func (env *Env) Strings() *StringStash {
	return env.strings
}

// Objects returns the object stash of the parse.
func (env *Env) Objects() *ObjectStash {
	return env.objects
}

// Depth returns the current nesting depth.
func (env *Env) Depth() int {
	return env.depth
}

// Format resolves inline markup of a line of text.
func (env *Env) Format(text string) string {
	return env.format.Format(text)
}

// ParseSection parses text as a single section, without groups, within the
// current parse. The resulting container is not attached to the document.
// ParseSection returns nil if text is empty or nesting is too deep.
func (env *Env) ParseSection(text string) *dom.Node {
	if !env.enter() {
		return nil
	}
	defer env.leave()
	return env.section(text, nil)
}

// ParseDocument parses text as a complete document, with stashes and
// registers of its own. It returns nil if nothing renders or nesting is
// too deep.
func (env *Env) ParseDocument(text string) *dom.Node {
	if env.depth+1 > env.parser.maxDepth {
		tracer().Errorf("documents nested deeper than %d levels", env.parser.maxDepth)
		return nil
	}
	return env.parser.newEnv(env.depth + 1).parseDocument(text)
}

func (env *Env) enter() bool {
	if env.depth+1 > env.parser.maxDepth {
		tracer().Errorf("sections nested deeper than %d levels", env.parser.maxDepth)
		return false
	}
	env.depth++
	return true
}

func (env *Env) leave() {
	env.depth--
}

// --- Documents and sections ------------------------------------------------

func (env *Env) parseDocument(source string) *dom.Node {
	text := strings.ToValidUTF8(source, "\uFFFD")
	text = strings.ReplaceAll(text, "\r", "")
	text = StripComments(text)
	text = env.strings.StashStrings(text)
	root := dom.NewContainer()
	env.build(segment.Segments(text), root)
	if isEmpty(root) {
		return nil
	}
	return root
}

// build appends a container for every segment to body.
func (env *Env) build(segs []segment.Segment, body *dom.Node) {
	for _, seg := range segs {
		if !seg.IsGroup() {
			env.section(seg.Text, body)
			continue
		}
		if !env.enter() {
			body.AppendChild(dom.NewInvalid(fmt.Sprintf("groups nested deeper than %d levels", env.parser.maxDepth)))
			continue
		}
		group := dom.NewContainer()
		body.AppendChild(group)
		env.build(seg.Children, group)
		env.leave()
	}
}

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// section creates a container for a run of text and appends it to parent, if
// parent is not nil. Local commands in the section apply to parent, or to
// the section itself if it is detached.
func (env *Env) section(text string, parent *dom.Node) *dom.Node {
	text = replaceGlobalSymbols(trimLines(text))
	if strings.TrimSpace(text) == "" {
		return nil
	}
	sect := dom.NewContainer()
	if parent != nil {
		parent.AppendChild(sect)
	}
	for _, para := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(para) == "" {
			continue
		}
		env.paragraph(strings.Split(para, "\n"), sect)
	}
	return sect
}

// trimLines removes spaces and tabs around every line, and empty lines at the
// start and end of text.
func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Trim(line, " \t")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

var globalSymbols = []struct {
	name        string
	replacement string
}{
	{`\par`, "\n\n"},
	{`\indent`, "\t"},
}

// replaceGlobalSymbols replaces `\par` by a paragraph break and `\indent` by
// a tab. A symbol must not be followed by a word character and must not be
// preceded by a backslash.
func replaceGlobalSymbols(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}
	var b strings.Builder
	i := 0
outer:
	for i < len(text) {
		if text[i] == '\\' && (i == 0 || text[i-1] != '\\') {
			for _, sym := range globalSymbols {
				end := i + len(sym.name)
				if strings.HasPrefix(text[i:], sym.name) && (end == len(text) || !isWordByte(text[end])) {
					b.WriteString(sym.replacement)
					i = end
					continue outer
				}
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isEmpty is true if a tree consists of containers only.
func isEmpty(root *dom.Node) bool {
	empty := true
	root.Walk(func(n *dom.Node) bool {
		if n.Kind != dom.Container {
			empty = false
		}
		return empty
	})
	return empty
}
