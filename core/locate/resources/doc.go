/*
Package resources resolves resources referenced by documents.

Documents reference images by URL or by file path. Parsing a document does
not load any images; instead, image nodes wait for the host to report the
outcome. This package is the host side of that contract.

As resource loading may be a time-consuming task, functions in this
package work in an async/await fashion by returning a promise.
Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed.

Remote resources are downloaded to the user's cache directory, in a folder
named after the configuration key `app-key`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'myrimark.resources'.
func tracer() tracing.Trace {
	return tracing.Select("myrimark.resources")
}
