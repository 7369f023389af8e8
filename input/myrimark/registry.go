package myrimark

import (
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/myrimark/core/parameters"
	"github.com/npillmayer/myrimark/engine/dom/style"
)

// registry maps names of local commands to their implementation.
// It is backed by a prefix tree, which serves command completion as well.
type registry struct {
	commands *trie.Trie
}

func newRegistry() *registry {
	return &registry{commands: trie.New()}
}

func (r *registry) register(name string, cmd LocalCommand) {
	if _, ok := r.commands.Find(name); ok {
		tracer().Infof("local command %q is redefined", name)
		r.commands.Remove(name)
	}
	r.commands.Add(name, cmd)
}

func (r *registry) lookup(name string) (LocalCommand, bool) {
	node, ok := r.commands.Find(name)
	if !ok {
		return nil, false
	}
	cmd, ok := node.Meta().(LocalCommand)
	return cmd, ok
}

func (r *registry) complete(prefix string) []string {
	names := r.commands.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}

func (r *registry) clone() *registry {
	c := newRegistry()
	for _, name := range r.complete("") {
		cmd, _ := r.lookup(name)
		c.commands.Add(name, cmd)
	}
	return c
}

// builtins are the local commands every parser knows.
var builtins = builtinCommands()

func builtinCommands() *registry {
	r := newRegistry()
	r.register("image", imageCommand{})
	r.register("anchor", anchorCommand{})
	r.register("center", centerCommand{})
	r.register("background_color", styleCommand{prop: style.BackgroundColor})
	r.register("text_color", styleCommand{prop: style.Color})
	r.register("padding", styleCommand{prop: style.Padding})
	r.register("rounding", styleCommand{prop: style.BorderRadius})
	r.register("hl", highlightCommand{})
	r.register("begin", beginCommand{})
	r.register("vardump", vardumpCommand{})
	r.register("stash", stashCommand{})
	r.register("repeat", repeatCommand{})
	return r
}

// --- Global commands -------------------------------------------------------

// globalFunction is a global command which acts once on the registers of a
// parse, in contrast to toggles.
type globalFunction func(*parameters.Registers)

var globals = globalCommands()

func globalCommands() *trie.Trie {
	t := trie.New()
	for _, toggle := range parameters.Toggles {
		t.Add(string(toggle), toggle)
	}
	t.Add("ResetHeaderIndexes", globalFunction(func(regs *parameters.Registers) {
		regs.ResetHeaders()
	}))
	return t
}

// lookupGlobal returns either a parameters.Toggle, a globalFunction, or nil.
func lookupGlobal(name string) interface{} {
	if node, ok := globals.Find(name); ok {
		return node.Meta()
	}
	return nil
}

// --- Listing and completion ------------------------------------------------

// LocalCommands returns the names of the built-in local commands, sorted.
func LocalCommands() []string {
	return builtins.complete("")
}

// GlobalCommands returns the names of all global commands, sorted.
func GlobalCommands() []string {
	names := globals.PrefixSearch("")
	sort.Strings(names)
	return names
}

// Complete returns the command invocations which start with prefix, e.g.
// ":im" completes to ":image". A prefix without `:` or `\` matches the names
// of local and global commands alike.
func Complete(prefix string) []string {
	return defaultParser.Complete(prefix)
}

// Complete returns the command invocations known to p which start with
// prefix. See the package-level function Complete.
func (p *Parser) Complete(prefix string) []string {
	var matches []string
	local := func(pre string) {
		for _, name := range p.commands.complete(pre) {
			matches = append(matches, ":"+name)
		}
	}
	global := func(pre string) {
		names := globals.PrefixSearch(pre)
		sort.Strings(names)
		for _, name := range names {
			matches = append(matches, `\`+name)
		}
	}
	switch {
	case strings.HasPrefix(prefix, ":"):
		local(prefix[1:])
	case strings.HasPrefix(prefix, `\`):
		global(prefix[1:])
	default:
		local(prefix)
		global(prefix)
	}
	return matches
}
