package myrimark

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
)

// Kind is the kind of a paragraph.
type Kind int8

// Kinds of paragraphs.
const (
	Plain Kind = iota
	UnorderedList
	OrderedList
	Checklist
	Header
	CodeBlock
	LocalCommandPara
	GlobalCommandPara
	Null
)

var kindNames = [...]string{
	"Plain", "UnorderedList", "OrderedList", "Checklist", "Header",
	"CodeBlock", "LocalCommandPara", "GlobalCommandPara", "Null",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Classify determines the kind of a paragraph from the first characters of
// its lines.
//
// A paragraph consisting of a single line starting with one of
//
//	:  #  \  $  `
//
// is a local command, header, global command, null paragraph or code block,
// respectively. Any other single line is plain text, even if it starts with a
// list marker; `**bold**` is not a list item.
// Paragraphs of more than one line are classified by the first character
// shared by all of their lines. If the first characters differ, the paragraph
// is plain text.
func Classify(lines []string) Kind {
	if len(lines) == 0 {
		return Plain
	}
	if len(lines) == 1 {
		switch firstChar(lines[0]) {
		case ":":
			return LocalCommandPara
		case "#":
			return Header
		case "\\":
			return GlobalCommandPara
		case "$":
			return Null
		case "`":
			return CodeBlock
		}
		return Plain
	}
	first := firstChar(lines[0])
	for _, line := range lines[1:] {
		if firstChar(line) != first {
			return Plain
		}
	}
	switch first {
	case "*":
		return UnorderedList
	case "-":
		return OrderedList
	case ">":
		return Checklist
	case "#":
		return Header
	case "`":
		return CodeBlock
	case "\\":
		return GlobalCommandPara
	case ":":
		return LocalCommandPara
	}
	return Plain
}

var graphemeSetup sync.Once

// firstChar returns the first user-perceived character of a line.
// Invalid UTF-8 yields the replacement character.
func firstChar(line string) string {
	if line == "" {
		return ""
	}
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, "\uFFFD")
	}
	graphemeSetup.Do(grapheme.SetupGraphemeClasses)
	// a grapheme will hardly span more than a handful of code points
	cut, runes := len(line), 0
	for i := range line {
		if runes == 16 {
			cut = i
			break
		}
		runes++
	}
	gstr := grapheme.StringFromString(line[:cut])
	if gstr.Len() == 0 {
		return ""
	}
	return gstr.Nth(0)
}
