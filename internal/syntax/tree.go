package syntax

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"ltfix/internal/source"
)

// ErrParse is returned for source that does not parse as Rust.
var ErrParse = errors.New("malformed rust source")

// Tree is a parsed Rust file. It is valid only for the content it was parsed from;
// passes parse again after every write.
type Tree struct {
	Source []byte

	tree *sitter.Tree
	root *sitter.Node
}

// Parse parses content with the tree-sitter Rust grammar. Source containing
// syntax errors is rejected with ErrParse.
func Parse(ctx context.Context, content []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	t := &Tree{Source: content, tree: tree, root: tree.RootNode()}
	if t.root.HasError() {
		pos := t.firstError(t.root)
		t.Close()
		if pos != nil {
			lc := source.NewFile("", content).Position(t.offset(pos.StartByte()))
			return nil, fmt.Errorf("%w: syntax error at %d:%d", ErrParse, lc.Line, lc.Col)
		}
		return nil, ErrParse
	}
	return t, nil
}

// Close releases the underlying parse tree.
func (t *Tree) Close() {
	if t == nil || t.tree == nil {
		return
	}
	t.tree.Close()
	t.tree = nil
}

func (t *Tree) firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !c.HasError() && !c.IsMissing() {
			continue
		}
		if found := t.firstError(c); found != nil {
			return found
		}
	}
	return nil
}

func (t *Tree) text(n *sitter.Node) string {
	return t.span(n).Text(t.Source)
}

func (t *Tree) span(n *sitter.Node) source.Span {
	sp, err := source.SpanOf(n.StartByte(), n.EndByte())
	if err != nil {
		panic(fmt.Errorf("node span overflow: %w", err))
	}
	return sp
}

func (t *Tree) offset(off uint32) int {
	sp, err := source.SpanOf(off, off)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return sp.Start
}

// walk visits n and its descendants depth-first; returning false from fn skips the children.
func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func childOfType(n *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && c.Type() == kind {
			return c
		}
	}
	return nil
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "line_comment", "block_comment":
		return true
	}
	return false
}
