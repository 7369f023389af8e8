/*
Package style holds inline style declarations for elements of a document tree.

Local commands of a document, like `:background_color{#ffe0e0}`, change the
presentation of the container they live in. These changes are collected as
CSS declarations in a Style and will be rendered as the `style` attribute of
the container's element.

Declarations are checked with a CSS parser before they are accepted. A value
which would smuggle in additional declarations or end the declaration block
is rejected.
*/
package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'myrimark.dom'.
func tracer() tracing.Trace {
	return tracing.Select("myrimark.dom")
}

// Property is the name of a CSS property, e.g. "padding".
type Property string

// Properties set by local commands and by rendering.
const (
	BackgroundColor Property = "background-color"
	Color           Property = "color"
	Padding         Property = "padding"
	BorderRadius    Property = "border-radius"
	ColumnCount     Property = "column-count"
	Display         Property = "display"
	Width           Property = "width"
	Height          Property = "height"
)

func (p Property) normalized() string {
	return strings.ToLower(strings.TrimSpace(string(p)))
}

// ErrEmptyValue is returned for declarations without a value.
var ErrEmptyValue = errors.New("empty property value")

// Style is an ordered set of CSS declarations. The zero value is an empty
// style, ready to use.
type Style struct {
	decls []*css.Declaration
}

// Set sets property prop to value. A previous value of prop is replaced, but
// keeps its position.
func (s *Style) Set(prop Property, value string) error {
	decl, err := declaration(prop, value)
	if err != nil {
		tracer().Infof("style: rejecting %s: %q: %v", prop, value, err)
		return err
	}
	for i, d := range s.decls {
		if d.Property == decl.Property {
			s.decls[i] = decl
			return nil
		}
	}
	s.decls = append(s.decls, decl)
	return nil
}

func declaration(property Property, value string) (*css.Declaration, error) {
	prop := property.normalized()
	if strings.TrimSpace(value) == "" {
		return nil, core.WrapError(ErrEmptyValue, core.EINVALID, "property %s needs a value", prop)
	}
	decls, err := parser.ParseDeclarations(fmt.Sprintf("%s: %s;", prop, value))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid declaration for %s", prop)
	}
	if len(decls) != 1 || decls[0].Property != prop || decls[0].Value == "" {
		return nil, core.Error(core.EINVALID, "invalid value for %s: %q", prop, value)
	}
	return decls[0], nil
}

// Get returns the value of property prop, if set.
func (s *Style) Get(prop Property) (string, bool) {
	if s == nil {
		return "", false
	}
	name := prop.normalized()
	for _, d := range s.decls {
		if d.Property == name {
			return d.Value, true
		}
	}
	return "", false
}

// Remove deletes property prop from s.
func (s *Style) Remove(prop Property) {
	name := prop.normalized()
	for i, d := range s.decls {
		if d.Property == name {
			s.decls = append(s.decls[:i], s.decls[i+1:]...)
			return
		}
	}
}

// Len returns the number of declarations in s.
func (s *Style) Len() int {
	if s == nil {
		return 0
	}
	return len(s.decls)
}

// Empty is true if s holds no declarations.
func (s *Style) Empty() bool {
	return s.Len() == 0
}

// Properties returns the names of all properties set, in order of declaration.
func (s *Style) Properties() []Property {
	if s == nil {
		return nil
	}
	props := make([]Property, len(s.decls))
	for i, d := range s.decls {
		props[i] = Property(d.Property)
	}
	return props
}

// String returns s in the format of an HTML style attribute.
func (s *Style) String() string {
	if s.Empty() {
		return ""
	}
	parts := make([]string, len(s.decls))
	for i, d := range s.decls {
		parts[i] = d.StringWithImportant(true)
	}
	return strings.Join(parts, " ")
}

// Parse reads a style attribute, e.g. "color: red; padding: 4px;".
func Parse(attr string) (*Style, error) {
	s := &Style{}
	if strings.TrimSpace(attr) == "" {
		return s, nil
	}
	decls, err := parser.ParseDeclarations(attr)
	if err != nil {
		return s, core.WrapError(err, core.EINVALID, "invalid style attribute")
	}
	for _, d := range decls {
		if d.Property == "" || d.Value == "" {
			continue
		}
		s.decls = append(s.decls, d)
	}
	return s, nil
}
