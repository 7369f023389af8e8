package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/myrimark/core"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// readSource reads a document from a file, or from stdin if filename is "-".
// Input may be UTF-8 or UTF-16 with a byte order mark; it is returned as
// UTF-8 in normalization form C.
func readSource(filename string) (string, error) {
	var r io.Reader
	if filename == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(filename)
		if err != nil {
			return "", core.WrapError(err, core.EMISSING, "cannot open %s", filename)
		}
		defer f.Close()
		r = f
	}
	return decodeSource(r)
}

func decodeSource(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", core.WrapError(err, core.EDECODE, "cannot decode input")
	}
	return norm.NFC.String(string(data)), nil
}

// isPage is true for HTML pages, which hold Myrimark containers instead of
// being a Myrimark document themselves.
func isPage(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// baseDir is the directory relative image paths are resolved against.
func baseDir(filename string) string {
	if filename == "-" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	return filepath.Dir(filename)
}
