package myrimark

import (
	"strings"

	"github.com/npillmayer/schuko"
)

// Configuration keys read by OptionsFrom.
const (
	ConfMaxDepth = "myrimark.maxdepth" // int
	ConfToggles  = "myrimark.toggles"  // comma separated list of toggle names
)

// OptionsFrom creates parser options from a configuration.
//
//	myrimark.maxdepth = 32
//	myrimark.toggles  = AutoIndexHeaders, HideImageErrors
func OptionsFrom(conf schuko.Configuration) []Option {
	var opts []Option
	if conf == nil {
		return opts
	}
	if conf.IsSet(ConfMaxDepth) {
		if n := conf.GetInt(ConfMaxDepth); n > 0 {
			opts = append(opts, WithMaxDepth(n))
		} else {
			tracer().Errorf("configuration: %s must be positive", ConfMaxDepth)
		}
	}
	if toggles := conf.GetString(ConfToggles); toggles != "" {
		opts = append(opts, WithToggles(strings.Split(toggles, ",")...))
	}
	return opts
}
