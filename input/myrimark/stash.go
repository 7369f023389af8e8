package myrimark

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	jsoniter "github.com/json-iterator/go"
)

// StringStash holds string literals of command parameters. Literals are
// replaced by tokens of the form `0x<N>` before a document is segmented, so
// that their content cannot be mistaken for markup.
type StringStash struct {
	m *linkedhashmap.Map
}

// NewStringStash creates an empty string stash.
func NewStringStash() *StringStash {
	return &StringStash{m: linkedhashmap.New()}
}

// Put stashes a string and returns its token.
func (st *StringStash) Put(value string) string {
	token := "0x" + strconv.Itoa(st.m.Size())
	st.m.Put(token, value)
	return token
}

// Lookup returns the string stashed for token.
func (st *StringStash) Lookup(token string) (string, bool) {
	if v, ok := st.m.Get(token); ok {
		return v.(string), true
	}
	return "", false
}

// Len returns the number of stashed strings.
func (st *StringStash) Len() int {
	return st.m.Size()
}

// Tokens returns the tokens of all stashed strings, in order of stashing.
func (st *StringStash) Tokens() []string {
	return keys(st.m)
}

// StashStrings replaces every double-quoted string located directly inside
// braces, i.e. `{"…"}`, by a token and stashes the content of the string.
// The braces are kept. A string ends at the first `"` followed by `}`.
func (st *StringStash) StashStrings(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for i < len(text) {
		if text[i] == '"' && i > 0 && text[i-1] == '{' {
			if end := strings.Index(text[i+1:], "\"}"); end >= 0 {
				b.WriteString(st.Put(text[i+1 : i+1+end]))
				i += end + 2 // continue with the closing brace
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

// ObjectStash holds named lists of strings, created by the command `stash`
// and consumed by the command `repeat`.
type ObjectStash struct {
	m *linkedhashmap.Map
}

// NewObjectStash creates an empty object stash.
func NewObjectStash() *ObjectStash {
	return &ObjectStash{m: linkedhashmap.New()}
}

// Put stores a list under name, replacing a previous list of that name.
func (ost *ObjectStash) Put(name string, items []string) {
	ost.m.Put(name, items)
}

// Get returns the list stored under name.
func (ost *ObjectStash) Get(name string) ([]string, bool) {
	if v, ok := ost.m.Get(name); ok {
		return v.([]string), true
	}
	return nil, false
}

// Names returns the names of all stored lists, in order of creation.
func (ost *ObjectStash) Names() []string {
	return keys(ost.m)
}

func keys(m *linkedhashmap.Map) []string {
	k := make([]string, 0, m.Size())
	for _, key := range m.Keys() {
		k = append(k, key.(string))
	}
	return k
}

// --- Dumping ---------------------------------------------------------------

var quotedItem = regexp.MustCompile(`'(.*?)'`)

// stashItems extracts all single-quoted items from s.
func stashItems(s string) []string {
	items := []string{}
	for _, m := range quotedItem.FindAllStringSubmatch(s, -1) {
		items = append(items, m[1])
	}
	return items
}

var dumpConfig = jsoniter.Config{IndentionStep: 2, EscapeHTML: false}.Froze()

var compactConfig = jsoniter.Config{EscapeHTML: false}.Froze()

// dumpStashes writes both stashes as indented JSON objects, one after the
// other.
func dumpStashes(strs *StringStash, objs *ObjectStash) string {
	stream := dumpConfig.BorrowStream(nil)
	defer dumpConfig.ReturnStream(stream)
	writeObject(stream, strs.m, func(v interface{}) {
		stream.WriteString(v.(string))
	})
	stream.WriteRaw("\n")
	writeObject(stream, objs.m, func(v interface{}) {
		items := v.([]string)
		if len(items) == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i, item := range items {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteString(item)
		}
		stream.WriteArrayEnd()
	})
	if stream.Error != nil {
		tracer().Errorf("cannot dump stashes: %v", stream.Error)
	}
	return string(stream.Buffer())
}

func writeObject(stream *jsoniter.Stream, m *linkedhashmap.Map, value func(interface{})) {
	if m.Empty() {
		stream.WriteEmptyObject()
		return
	}
	stream.WriteObjectStart()
	it := m.Iterator()
	for first := true; it.Next(); first = false {
		if !first {
			stream.WriteMore()
		}
		stream.WriteObjectField(it.Key().(string))
		value(it.Value())
	}
	stream.WriteObjectEnd()
}

// jsonList formats items as a compact JSON array, without HTML escaping.
func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	s, err := compactConfig.MarshalToString(items)
	if err != nil {
		return fmt.Sprintf("%q", items)
	}
	return s
}
