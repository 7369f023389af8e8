/*
Package myrimark parses Myrimark documents into document trees.

Myrimark is a lightweight markup language. A document is made up of
paragraphs, separated by blank lines. The kind of a paragraph is determined
by the first character of its lines:

	text            plain paragraph
	* item          unordered list
	- item          ordered list
	> item          checklist
	# header        header, level = number of '#' (1…6)
	` code          code block
	:name{p}{q}     local command
	\Name           global command
	$               nothing

A paragraph of more than one line adopts a kind only if all of its lines
start with the same character; otherwise it is plain text. Single-line
paragraphs are dispatched on their first character directly.

Text within paragraphs may carry inline markup, see package inline.

Parsing proceeds in stages:

	source
	  → comment stripping    %[ block ]%  and  %% line
	  → string stashing      {"…"} → {0xN}
	  → segmenting           $begin … $end groups, see package segment
	  → sections             one per run of text, trimmed and split into paragraphs
	  → classification and building of nodes

Parsing never fails. Malformed input, such as unknown commands, is reported
in-band as visible text in the resulting tree.

Local commands

Local commands are invoked with positional parameters in braces. A parameter
in double quotes may contain any characters, including braces and line breaks.

	:image{url}{scale}       image, scaled by a factor (default 1)
	:anchor{id}{text}        paragraph with an id
	:center{text}            centered container with text parsed as a section
	:background_color{c}     sets the background color of the enclosing container
	:text_color{c}           sets the text color of the enclosing container
	:padding{amount}         sets the padding of the enclosing container
	:rounding{amount}        sets the border radius of the enclosing container
	:hl{text}                highlighted text
	:begin{type}{args…}      adds classes to the enclosing container
	:vardump                 dumps the stashes of the current parse
	:stash{name}{'a' 'b'}    stashes a list of strings
	:repeat{cmd}{name}{pre}  parses cmd once per item of a stashed list,
	                         replacing |$| with the item

Clients may add local commands of their own with WithCommand.

Global commands

Global commands toggle switches, which stay in effect for the rest of the
document:

	\AutoIndexHeaders       prefix headers with a section index
	\EveryLineBreaks        line breaks within plain paragraphs are kept
	\HideImageErrors        images which fail to load do not show an error
	\ResetHeaderIndexes     start section indexes anew

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package myrimark

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'myrimark.input'.
func tracer() tracing.Trace {
	return tracing.Select("myrimark.input")
}
