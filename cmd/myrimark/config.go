package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"gopkg.in/yaml.v3"
)

// Configuration keys of the command line tool, in addition to the keys
// read by the parser.
const (
	confResolveImages = "myrimark.images.resolve" // bool
	confImageTimeout  = "myrimark.images.timeout" // seconds
	confImageWorkers  = "myrimark.images.workers" // concurrent downloads
)

func defaults() testconfig.Conf {
	return testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.root":         "Error",
		"trace.myrimark.cli": "Info",
		"app-key":            "myrimark",
		confResolveImages:    true,
		confImageTimeout:     10,
		confImageWorkers:     4,
	}
}

// setupConfig builds the global configuration from defaults, an optional
// YAML file, and explicit overrides (usually from command line flags),
// in this order. It then initializes tracing from the result.
func setupConfig(filename string, overrides map[string]string) (testconfig.Conf, error) {
	conf := defaults()
	if filename != "" {
		if err := mergeYAML(conf, filename); err != nil {
			return nil, err
		}
	}
	for k, v := range overrides {
		conf.Set(k, v)
	}
	gconf.Initialize(conf)
	if err := setupTracing(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func setupTracing(conf testconfig.Conf) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return core.WrapError(err, core.EINVALID, "error configuring tracing")
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// mergeYAML reads a YAML file and merges its settings into conf.
// Nested maps are flattened to dotted keys:
//
//	trace:
//	  myrimark.input: Debug
//	myrimark:
//	  toggles: [AutoIndexHeaders]
//
// results in keys "trace.myrimark.input" and "myrimark.toggles".
func mergeYAML(conf testconfig.Conf, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot read configuration file %s", filename)
	}
	var m map[string]interface{}
	if err = yaml.Unmarshal(data, &m); err != nil {
		return core.WrapError(err, core.EINVALID, "invalid configuration file %s", filename)
	}
	flatten(conf, "", m)
	return nil
}

func flatten(conf testconfig.Conf, prefix string, m map[string]interface{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := v.(type) {
		case map[string]interface{}:
			flatten(conf, key, x)
		case []interface{}:
			items := make([]string, len(x))
			for i, item := range x {
				items[i] = fmt.Sprintf("%v", item)
			}
			conf[key] = strings.Join(items, ",")
		case nil:
			delete(conf, key)
		default:
			conf[key] = x
		}
	}
}
