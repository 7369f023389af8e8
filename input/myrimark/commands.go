package myrimark

import (
	"fmt"
	"strings"

	"github.com/npillmayer/myrimark/core/option"
	"github.com/npillmayer/myrimark/core/parameters"
	"github.com/npillmayer/myrimark/engine/dom"
	"github.com/npillmayer/myrimark/engine/dom/style"
)

// LocalCommand is implemented by local commands, i.e. lines of the form
//
//	:name{param1}{param2}…
//
// Invoke is called with the environment of the current parse, the container
// enclosing the command's paragraph and the positional parameters. A command
// may change the container's presentation. It returns a node to be appended
// to the document, or nil. Nodes of kind dom.Markup are inserted as raw HTML.
type LocalCommand interface {
	Invoke(env *Env, container *dom.Node, args []string) *dom.Node
}

// LocalCommandFunc is an adapter to use ordinary functions as local commands.
type LocalCommandFunc func(env *Env, container *dom.Node, args []string) *dom.Node

// Invoke calls f(env, container, args).
func (f LocalCommandFunc) Invoke(env *Env, container *dom.Node, args []string) *dom.Node {
	return f(env, container, args)
}

// :image{url}{scale}
type imageCommand struct{}

func (imageCommand) Invoke(env *Env, container *dom.Node, args []string) *dom.Node {
	src := option.Param(args, 0).OrElse("")
	scale, _ := option.ParseFloat(option.Param(args, 1)).Match(option.Maybe{
		option.None: 1.0,
		option.Some: func(o interface{}) (interface{}, error) {
			return o.(option.FloatT).Unwrap()
		},
		option.Error: func(o interface{}) (interface{}, error) {
			tracer().Infof("image %q: scale %s is not a number, using 1", src, o)
			return 1.0, nil
		},
	})
	regs := env.regs
	return dom.NewImage(src, scale.(float64), func() bool {
		return regs.IsActive(parameters.HideImageErrors)
	})
}

// :anchor{id}{text}
type anchorCommand struct{}

func (anchorCommand) Invoke(env *Env, container *dom.Node, args []string) *dom.Node {
	p := dom.NewParagraph(env.Format(option.Param(args, 1).OrElse("")))
	p.ID = option.Param(args, 0).OrElse("")
	return p
}

// :center{text}
type centerCommand struct{}

func (centerCommand) Invoke(env *Env, container *dom.Node, args []string) *dom.Node {
	div := dom.NewContainer()
	div.AddClass("justify", "center")
	if section := env.ParseSection(option.Param(args, 0).OrElse("")); section != nil {
		div.AppendChild(section)
	}
	return div
}

// :background_color{c}, :text_color{c}, :padding{amount}, :rounding{amount}
type styleCommand struct {
	prop style.Property
}

func (cmd styleCommand) Invoke(env *Env, container *dom.Node, args []string) *dom.Node {
	value, err := option.Param(args, 0).Match(option.Maybe{
		option.None: option.Fail(fmt.Errorf("missing value for %s", cmd.prop)),
		option.Some: func(o interface{}) (interface{}, error) {
			return strings.TrimSpace(o.(option.StringT).Unwrap()), nil
		},
	})
	if err != nil {
		tracer().Infof(err.Error())
		return nil
	}
	if err = container.Style.Set(cmd.prop, value.(string)); err != nil {
		tracer().Infof("ignoring style: %v", err)
	}
	return nil
}

// :hl{text}
type highlightCommand struct{}

func (highlightCommand) Invoke(env *Env, container *dom.Node, args []string) *dom.Node {
	return dom.NewHighlight(option.Param(args, 0).OrElse(""))
}

// :begin{type}{args…}
type beginCommand struct{}

func (beginCommand) Invoke(env *Env, container *dom.Node, args []string) *dom.Node {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	addType := func(o interface{}) (interface{}, error) {
		container.AddClass(o.(option.StringT).Unwrap())
		return nil, nil
	}
	_, err := option.Param(args, 0).Match(option.Of{
		option.None: option.Fail(fmt.Errorf("begin without a type")),
		"multicol": func(o interface{}) (interface{}, error) {
			addType(o)
			if len(rest) > 0 {
				if err := container.Style.Set(style.ColumnCount, rest[0]); err != nil {
					tracer().Infof("multicol: %v", err)
				}
				container.AddClass(rest[1:]...)
			}
			return nil, nil
		},
		"paragraph": func(o interface{}) (interface{}, error) {
			addType(o)
			container.AddClass(rest...)
			return nil, nil
		},
		option.Some: addType,
	})
	if err != nil {
		tracer().Infof("%v", err)
	}
	return nil
}

// :vardump
type vardumpCommand struct{}

func (vardumpCommand) Invoke(env *Env, container *dom.Node, args []string) *dom.Node {
	return dom.NewPreformatted(dumpStashes(env.strings, env.objects))
}

// :stash{name}{'a' 'b' …}
type stashCommand struct{}

func (stashCommand) Invoke(env *Env, container *dom.Node, args []string) *dom.Node {
	name := option.Param(args, 0).OrElse("")
	items := stashItems(option.Param(args, 1).OrElse(""))
	env.objects.Put(name, items)
	tracer().Debugf("stashed %q with %d items", name, len(items))
	return dom.NewMarkup(fmt.Sprintf("<p>STASHED %s with %s</p>", name, jsonList(items)))
}

// :repeat{cmd}{name}{preamble}
type repeatCommand struct{}

// Placeholder is replaced by the current item in the command text of repeat.
const Placeholder = "|$|"

func (repeatCommand) Invoke(env *Env, container *dom.Node, args []string) *dom.Node {
	cmd := option.Param(args, 0).OrElse("")
	name := option.Param(args, 1).OrElse("")
	items, ok := env.objects.Get(name)
	if !ok {
		tracer().Errorf("repeat: no stashed list named %q", name)
		return nil
	}
	source := expand(cmd, items, option.Param(args, 2).OrElse(""))
	tracer().Debugf("repeat expands to %q", source)
	return env.ParseDocument(source)
}

// expand substitutes every item into cmd and puts the resulting lines after
// preamble. If the lines form a structured paragraph, like a list, they are
// kept together; otherwise every line becomes a paragraph of its own.
func expand(cmd string, items []string, preamble string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = strings.ReplaceAll(cmd, Placeholder, item)
	}
	sep := "\n\n"
	if len(lines) > 0 && Classify(trimAll(lines)) != Plain {
		sep = "\n"
	}
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString(sep)
	}
	return b.String()
}

func trimAll(lines []string) []string {
	t := make([]string, len(lines))
	for i, line := range lines {
		t[i] = strings.Trim(line, " \t")
	}
	return t
}
