package parser

import (
	"fmt"
	"strings"
)

// Outline renders the document as an indented one-node-per-line dump,
// in the html5lib tree-construction format:
//
//	#document
//	| <a href="x">
//	|   "some text"
//	|   <!-- a comment -->
//
// Tests and the CLI compare and display trees in this form.
func (d *Document) Outline() string {
	var b strings.Builder
	b.WriteString("#document\n")
	for _, c := range d.Root.Children {
		writeOutline(&b, c, 0)
	}
	return b.String()
}

func writeOutline(b *strings.Builder, n *Node, depth int) {
	b.WriteString("| ")
	b.WriteString(strings.Repeat("  ", depth))
	switch n.Type {
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Name)
		for _, a := range n.Attributes {
			fmt.Fprintf(b, " %s=%q", a.Name, a.Value)
		}
		b.WriteString(">\n")
		for _, c := range n.Children {
			writeOutline(b, c, depth+1)
		}
	case TextNode:
		fmt.Fprintf(b, "%q\n", n.Data)
	case CommentNode:
		fmt.Fprintf(b, "<!-- %s -->\n", n.Data)
	}
}
