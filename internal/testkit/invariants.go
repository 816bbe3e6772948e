package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"testgen/internal/ast"
	"testgen/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed unit:
// 1) the root span lies within file content and points at sf
// 2) every declaration span is non-empty and fully contained in the root span
// 3) the root span covers the union of declaration spans (if any exist)
//
// Synthetic statement nodes carry no span and are skipped.
func CheckSpanInvariants(tree *ast.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}

	// 1) root span sanity
	if root.Span.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", root.Span.File, sf.ID)
	}
	if root.Span.End < root.Span.Start {
		return fmt.Errorf("root span is inverted: %v", root.Span)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.End > lenContent {
		return fmt.Errorf("root span end beyond content: %d > %d", root.Span.End, lenContent)
	}

	// 2) declaration spans within root; 3) root covers union
	var union source.Span
	var haveDecl bool
	var walkErr error
	tree.Walk(tree.Root, func(id ast.NodeID, n *ast.Node) bool {
		if walkErr != nil {
			return false
		}
		if id == tree.Root {
			return true
		}
		if n.Kind == ast.NodeStmt {
			return false
		}
		sp := n.Span
		if sp.End <= sp.Start {
			walkErr = fmt.Errorf("empty %s span: %v", n.Kind, sp)
			return false
		}
		if sp.File != sf.ID {
			walkErr = fmt.Errorf("%s span file mismatch: got=%d want=%d", n.Kind, sp.File, sf.ID)
			return false
		}
		if sp.Start < root.Span.Start || sp.End > root.Span.End {
			walkErr = fmt.Errorf("%s span %v is outside root span %v", n.Kind, sp, root.Span)
			return false
		}
		if !haveDecl {
			union = sp
			haveDecl = true
		} else {
			union = union.Cover(sp)
		}
		return true
	})
	if walkErr != nil {
		return walkErr
	}

	if !haveDecl {
		return nil
	}
	if root.Span.Empty() {
		return fmt.Errorf("root span is empty but unit has declarations")
	}
	if union.Start < root.Span.Start || union.End > root.Span.End {
		return fmt.Errorf("root span %v does not cover union of declarations %v", root.Span, union)
	}
	return nil
}
