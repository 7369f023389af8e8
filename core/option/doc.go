/*
Package option implements optional values and matching on them.

Local commands take positional parameters, any of which a document author may
leave out. Commands read them as option types and match on the outcome:

	scale, err := option.ParseFloat(option.Param(args, 1)).Match(option.Maybe{
		option.None:  1.0,
		option.Some:  func(o interface{}) (interface{}, error) { … },
		option.Error: 1.0,
	})

A match maps either a concrete value, or one of None, Some and Error, to a
result. A result which is a function is called with the option value.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package option

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'myrimark.input'.
func tracer() tracing.Trace {
	return tracing.Select("myrimark.input")
}
