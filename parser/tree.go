package parser

import "strings"

// NodeType discriminates the node kinds a built tree contains.
type NodeType uint

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
)

// Node is one element, text run or comment in a built document. Each
// node exclusively owns its children; the tree is a strict forest
// with no cycles and no back-references.
type Node struct {
	Type       NodeType
	Name       string        // ElementNode only, always lowercase
	Attributes AttributeList // ElementNode only
	Data       string        // TextNode/CommentNode content
	Children   []*Node       // ElementNode only
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	v, _ := n.Attributes.Get(name)
	return v
}

// Text returns the concatenated text content of the node and its
// descendants, in document order.
func (n *Node) Text() string {
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	if n.Type == TextNode {
		b.WriteString(n.Data)
		return
	}
	for _, c := range n.Children {
		c.appendText(b)
	}
}

// Document is the result of a whole-document parse: a synthetic
// #document root element owning everything that was parsed.
type Document struct {
	Root *Node
}

// ElementsByTagName returns every element named name, depth-first in
// document order. The name match is case-insensitive.
func (d *Document) ElementsByTagName(name string) []*Node {
	var out []*Node
	name = strings.ToLower(name)
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			if c.Type == ElementNode {
				if c.Name == name {
					out = append(out, c)
				}
				walk(c)
			}
		}
	}
	walk(d.Root)
	return out
}

// FirstElement returns the first element named name in document
// order, or nil.
func (d *Document) FirstElement(name string) *Node {
	if els := d.ElementsByTagName(name); len(els) > 0 {
		return els[0]
	}
	return nil
}

// TreeBuilder folds a token stream into a Document. Unclosed elements
// are auto-closed when an ancestor's close tag arrives or when the
// stream ends, and stray close tags are ignored, so the output is
// always properly nested no matter how broken the input was. The
// builder never fails.
type TreeBuilder struct {
	root  *Node
	stack []*Node
}

// NewTreeBuilder creates a builder whose open-element stack holds
// just the synthetic root.
func NewTreeBuilder() *TreeBuilder {
	root := &Node{Type: ElementNode, Name: "#document"}
	return &TreeBuilder{
		root:  root,
		stack: []*Node{root},
	}
}

func (b *TreeBuilder) top() *Node {
	return b.stack[len(b.stack)-1]
}

// ProcessToken applies one token to the tree.
func (b *TreeBuilder) ProcessToken(t Token) {
	switch t.Type {
	case OpenTagToken:
		n := &Node{Type: ElementNode, Name: strings.ToLower(t.TagName), Attributes: t.Attributes}
		b.top().Children = append(b.top().Children, n)
		// a self-closing element can have no children, so it
		// never goes on the stack; its synthetic CloseTag is then
		// ignored as a stray
		if !t.SelfClosing {
			b.stack = append(b.stack, n)
		}
	case CloseTagToken:
		b.closeElement(t.TagName)
	case TextToken:
		b.top().Children = append(b.top().Children, &Node{Type: TextNode, Data: t.Data})
	case CommentToken:
		b.top().Children = append(b.top().Children, &Node{Type: CommentNode, Data: t.Data})
	}
}

// closeElement pops the open-element stack down to and including the
// nearest element named name, auto-closing everything above it. A
// name with nothing open is a stray close tag and changes nothing.
func (b *TreeBuilder) closeElement(name string) {
	for i := len(b.stack) - 1; i > 0; i-- {
		if strings.EqualFold(b.stack[i].Name, name) {
			b.stack = b.stack[:i]
			return
		}
	}
}

// Finish closes any elements still open, in innermost-first order,
// and returns the completed document.
func (b *TreeBuilder) Finish() *Document {
	b.stack = b.stack[:1]
	return &Document{Root: b.root}
}
