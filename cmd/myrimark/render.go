package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/myrimark/core"
	"github.com/npillmayer/myrimark/core/locate/resources"
	"github.com/npillmayer/myrimark/engine/dom"
	"github.com/npillmayer/myrimark/engine/dom/xpathadapter"
	myrihtml "github.com/npillmayer/myrimark/input/html"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

type renderFlags struct {
	output   string
	selector string
	xpath    string
	tree     bool
	noImages bool
}

func renderCommand() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render [flags] FILE",
		Short: "Render a document or the Myrimark containers of an HTML page",
		Long: `Render a Myrimark document to HTML. FILE may be "-" for stdin.
Files ending in .html are treated as pages: every div.myrimark-container
of the page is rendered in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.Context(), args[0], flags)
		},
	}
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&flags.selector, "select", "", "Output only elements matching a CSS selector")
	cmd.Flags().StringVar(&flags.xpath, "xpath", "", "Output only nodes matching an XPath expression")
	cmd.Flags().BoolVar(&flags.tree, "tree", false, "Output the document tree instead of HTML")
	cmd.Flags().BoolVar(&flags.noImages, "no-images", false, "Do not resolve images")
	return cmd
}

func render(ctx context.Context, filename string, flags renderFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	source, err := readSource(filename)
	if err != nil {
		return err
	}
	var out io.Writer = os.Stdout
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "cannot create output file %s", flags.output)
		}
		defer f.Close()
		out = f
	}
	cw := &countingWriter{w: out}
	var root *html.Node
	failed := 0
	if isPage(filename) {
		if root, err = renderPage(source); err != nil {
			return err
		}
	} else {
		doc := app.parser.Parse(source)
		if doc == nil {
			tracer().Infof("%s renders to nothing", filename)
			return nil
		}
		if !flags.noImages && app.conf.GetBool(confResolveImages) {
			failed = resolveImages(ctx, doc, baseDir(filename))
		}
		if flags.tree {
			doc.Dump(cw)
			return nil
		}
		if root, err = doc.HTML(); err != nil {
			return err
		}
	}
	if err = writeResult(cw, root, flags); err != nil {
		return err
	}
	if flags.output != "" {
		pterm.Success.Printfln("wrote %s to %s in %s", humanize.Bytes(uint64(cw.n)),
			flags.output, time.Since(start).Round(time.Millisecond))
		if failed > 0 {
			pterm.Warning.Printfln("%d image(s) could not be loaded", failed)
		}
	}
	return nil
}

func renderPage(source string) (*html.Node, error) {
	page, err := myrihtml.ReadPage(strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	n, err := myrihtml.ParsePage(page.Nodes[0], app.parser)
	tracer().Infof("page has %d Myrimark container(s)", n)
	if err != nil {
		return nil, err
	}
	return page.Nodes[0], nil
}

// resolveImages resolves all images of doc and completes their state.
// Failing images are not an error: they show their error text.
// resolveImages returns the number of failed images.
func resolveImages(ctx context.Context, doc *dom.Node, dir string) int {
	images := doc.Images()
	if len(images) == 0 {
		return 0
	}
	timeout := time.Duration(app.conf.GetInt(confImageTimeout)) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	placeholders := make([]resources.Placeholder, len(images))
	for i, img := range images {
		placeholders[i] = img
	}
	err := resources.ResolveAll(ctx, placeholders, dir, app.conf.GetInt(confImageWorkers))
	if merr, ok := err.(*multierror.Error); ok {
		tracer().Infof("%v", merr)
		return merr.Len()
	}
	return 0
}

func writeResult(w io.Writer, root *html.Node, flags renderFlags) error {
	var nodes []*html.Node
	var err error
	switch {
	case flags.selector != "":
		nodes, err = dom.Query(root, flags.selector)
	case flags.xpath != "":
		nodes, err = xpathadapter.Select(root, flags.xpath)
	default:
		return html.Render(w, root)
	}
	if err != nil {
		return err
	}
	tracer().Infof("%d node(s) selected", len(nodes))
	for _, n := range nodes {
		if err = html.Render(w, n); err != nil {
			return core.WrapError(err, core.EINTERNAL, "cannot write result")
		}
		fmt.Fprintln(w)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
