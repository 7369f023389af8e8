package option

import (
	"errors"
	"strconv"
	"strings"
)

// Errors returned by Match.
var (
	ErrNoSuchMatchPattern    = errors.New("no such match pattern")
	ErrCannotMatchUnsetValue = errors.New("cannot match unset value")
	ErrCannotMatchValue      = errors.New("cannot match value")
)

// MaybeOption labels the cases of a match which do not name a concrete value.
type MaybeOption int

// Match cases: an unset value, a set value, and a failed match.
const (
	None MaybeOption = iota
	Some
	Error
)

// Maybe is a set of match cases for None, Some and Error.
type Maybe map[MaybeOption]interface{}

// Of is a set of match cases for concrete values. A value without a case
// of its own falls back to the cases of Maybe.
type Of map[interface{}]interface{}

// Type is the interface of optional values.
type Type interface {
	Match(choices interface{}) (interface{}, error)
	Equals(other interface{}) bool
	IsNone() bool
}

// Match matches o against choices, which must be of type Of or Maybe.
// The result of the matching case is returned. If it is a function of type
//
//	func(interface{}) (interface{}, error)
//
// it is called with o, and its return values are returned.
// If the matching case returns an error and choices holds a case for Error,
// that case is used instead.
func Match(o Type, choices interface{}) (interface{}, error) {
	var cases map[interface{}]interface{}
	switch c := choices.(type) {
	case Of:
		cases = c
	case Maybe:
		cases = make(map[interface{}]interface{}, len(c))
		for k, v := range c {
			cases[k] = v
		}
	default:
		return nil, ErrNoSuchMatchPattern
	}
	return match(o, cases)
}

// Match matches o against the cases of of.
func (of Of) Match(o Type) (interface{}, error) {
	return match(o, of)
}

// Match matches o against the cases of maybe.
func (maybe Maybe) Match(o Type) (interface{}, error) {
	return Match(o, maybe)
}

func match(o Type, cases map[interface{}]interface{}) (interface{}, error) {
	if o.IsNone() {
		if c, ok := cases[None]; ok {
			return result(c, o)
		}
		return nil, ErrCannotMatchUnsetValue
	}
	c, ok := concreteCase(o, cases)
	if !ok {
		c, ok = cases[Some]
	}
	var value interface{}
	err := ErrCannotMatchValue
	if ok {
		value, err = result(c, o)
	}
	if err != nil {
		tracer().Debugf("option %v: %v", o, err)
		if c, ok := cases[Error]; ok {
			return result(c, o)
		}
	}
	return value, err
}

// concreteCase finds the case for the value of o, if any.
func concreteCase(o Type, cases map[interface{}]interface{}) (interface{}, bool) {
	for k, c := range cases {
		if _, isLabel := k.(MaybeOption); isLabel {
			continue
		}
		if o.Equals(k) {
			return c, true
		}
	}
	return nil, false
}

func result(c interface{}, o Type) (interface{}, error) {
	if f, ok := c.(func(interface{}) (interface{}, error)); ok {
		return f(o)
	}
	return c, nil
}

// Fail may be used as a match case, causing Match to fail with err.
// The error will be returned by Match(…), unless caught by a case for Error.
//
//	_, err := o.Match(option.Of{
//	     option.None: …,
//	     "99":        option.Fail(errors.New("99 is illegal")),
//	     option.Some: …,
//	})
func Fail(err error) func(interface{}) (interface{}, error) {
	return func(interface{}) (interface{}, error) {
		return nil, err
	}
}

// --- StringT ---------------------------------------------------------------

// StringT is an option type for strings. Local commands use it for their
// positional parameters, which may be left out by a document author.
type StringT struct {
	s   string
	set bool
}

// SomeString creates an optional string with an initial value of s.
func SomeString(s string) StringT {
	return StringT{s: s, set: true}
}

// String creates an optional string without an initial value.
func String() StringT {
	return StringT{}
}

// Param returns the i-th positional parameter of params, if present.
func Param(params []string, i int) StringT {
	if i < 0 || i >= len(params) {
		return String()
	}
	return SomeString(params[i])
}

// Match is part of interface option.Type.
func (o StringT) Match(choices interface{}) (value interface{}, err error) {
	return Match(o, choices)
}

// Equals is part of interface option.Type.
func (o StringT) Equals(other interface{}) bool {
	if s, ok := other.(string); ok {
		return o.set && o.s == s
	}
	return false
}

// Unwrap returns the underlying string, or "" if o is unset.
func (o StringT) Unwrap() string {
	return o.s
}

// OrElse returns the underlying string, or dflt if o is unset.
func (o StringT) OrElse(dflt string) string {
	if !o.set {
		return dflt
	}
	return o.s
}

// IsNone returns true if o is unset.
func (o StringT) IsNone() bool {
	return !o.set
}

func (o StringT) String() string {
	if o.IsNone() {
		return "String.None"
	}
	return strconv.Quote(o.s)
}

var _ Type = StringT{}

// --- FloatT ----------------------------------------------------------------

// ErrNotANumber is flagged by FloatT values created from a string which does
// not denote a number.
var ErrNotANumber = errors.New("not a number")

// FloatT is an option type for float64. A FloatT parsed from an invalid string
// is set, but carries ErrNotANumber.
type FloatT struct {
	f   float64
	set bool
	err error
}

// SomeFloat creates an optional float with an initial value of x.
func SomeFloat(x float64) FloatT {
	return FloatT{f: x, set: true}
}

// Float creates an optional float without an initial value.
func Float() FloatT {
	return FloatT{}
}

// ParseFloat converts an optional string to an optional float.
// Leading and trailing whitespace is ignored.
func ParseFloat(s StringT) FloatT {
	if s.IsNone() {
		return Float()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s.Unwrap()), 64)
	if err != nil {
		tracer().Debugf("cannot parse %q as float: %v", s.Unwrap(), err)
		return FloatT{set: true, err: ErrNotANumber}
	}
	return SomeFloat(f)
}

// Match is part of interface option.Type.
func (o FloatT) Match(choices interface{}) (value interface{}, err error) {
	return Match(o, choices)
}

// Equals is part of interface option.Type.
func (o FloatT) Equals(other interface{}) bool {
	if o.err != nil {
		return false
	}
	switch x := other.(type) {
	case float64:
		return o.set && o.f == x
	case int:
		return o.set && o.f == float64(x)
	}
	return false
}

// Unwrap returns the underlying float, together with a possible parse error.
func (o FloatT) Unwrap() (float64, error) {
	return o.f, o.err
}

// IsNone returns true if o is unset.
func (o FloatT) IsNone() bool {
	return !o.set
}

func (o FloatT) String() string {
	if o.IsNone() {
		return "Float.None"
	}
	if o.err != nil {
		return "Float.NaN"
	}
	return strconv.FormatFloat(o.f, 'g', -1, 64)
}

var _ Type = FloatT{}
