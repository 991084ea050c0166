// Command tagsoup parses lenient, real-world HTML from files or stdin
// and prints the resulting tree, the raw token stream, or indented
// XML.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/heathj/tagsoup/parser"
)

type cliOptions struct {
	tokens         bool
	xml            bool
	only           []string
	ignoreText     bool
	ignoreComments bool
	verbose        bool
}

func main() {
	opts := &cliOptions{}
	cmd := &cobra.Command{
		Use:   "tagsoup [file...]",
		Short: "Parse tag-soup HTML into a tree, tokens, or XML",
		Long: "tagsoup runs a lenient HTML parser over each input file (or stdin\n" +
			"when no files are given) and prints what it recovered. Malformed\n" +
			"markup never fails; it is repaired by fixed recovery rules.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if opts.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			if len(args) == 0 {
				return run(opts, "stdin", os.Stdin)
			}
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return errors.Wrapf(err, "opening %s", path)
				}
				err = run(opts, path, f)
				f.Close()
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.tokens, "tokens", false, "print the raw token stream instead of a tree")
	cmd.Flags().BoolVar(&opts.xml, "xml", false, "print the recovered tree as indented XML")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "surface only these tags and their subtrees (repeatable)")
	cmd.Flags().BoolVar(&opts.ignoreText, "ignore-text", false, "suppress text tokens")
	cmd.Flags().BoolVar(&opts.ignoreComments, "ignore-comments", false, "suppress comment tokens")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func run(opts *cliOptions, name string, in io.Reader) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}

	start := time.Now()
	if opts.tokens {
		n := printTokens(opts, string(data))
		logrus.WithFields(logrus.Fields{
			"input":   name,
			"tokens":  n,
			"elapsed": time.Since(start),
		}).Debug("tokenized")
		return nil
	}

	doc := parser.ParseWithOptions(string(data), parser.Options{
		IgnoreText:     opts.ignoreText,
		IgnoreComments: opts.ignoreComments,
		TagFilters:     opts.only,
	})
	logrus.WithFields(logrus.Fields{
		"input":   name,
		"nodes":   countNodes(doc.Root),
		"elapsed": time.Since(start),
	}).Debug("parsed")

	if opts.xml {
		return writeXML(doc)
	}
	fmt.Print(doc.Outline())
	return nil
}

func printTokens(opts *cliOptions, src string) int {
	z := parser.NewTokenizer(src)
	z.SetIgnoreText(opts.ignoreText)
	z.SetIgnoreComments(opts.ignoreComments)
	for _, tag := range opts.only {
		z.AddTagFilter(tag)
	}

	n := 0
	for t := z.Read(); t != nil; t = z.Read() {
		n++
		switch t.Type {
		case parser.OpenTagToken, parser.CloseTagToken:
			fmt.Printf("%-8s %s", t.Type, t.TagName)
			for _, a := range t.Attributes {
				fmt.Printf(" %s=%q", a.Name, a.Value)
			}
			if t.SelfClosing {
				fmt.Print(" (self-closing)")
			}
			fmt.Println()
		default:
			fmt.Printf("%-8s %q\n", t.Type, t.Data)
		}
	}
	return n
}

func writeXML(doc *parser.Document) error {
	out := etree.NewDocument()
	for _, c := range doc.Root.Children {
		appendEtree(&out.Element, c)
	}
	out.Indent(2)
	_, err := out.WriteTo(os.Stdout)
	return errors.Wrap(err, "writing xml")
}

func appendEtree(parent *etree.Element, n *parser.Node) {
	switch n.Type {
	case parser.ElementNode:
		e := parent.CreateElement(n.Name)
		for _, a := range n.Attributes {
			e.CreateAttr(a.Name, a.Value)
		}
		for _, c := range n.Children {
			appendEtree(e, c)
		}
	case parser.TextNode:
		parent.CreateText(n.Data)
	case parser.CommentNode:
		parent.CreateComment(n.Data)
	}
}

func countNodes(n *parser.Node) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}
