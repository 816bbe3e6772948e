// Package ast holds the syntax tree shared by the parser and the generator.
//
// Nodes live in an arena and carry a NodeKind tag plus a PayloadID into a
// per-kind payload arena, so consumers switch on Kind and then fetch the
// typed payload (Tree.Type, Tree.Method, ...). IDs are 1-based; zero means
// "no node". The parser produces a tree for a whole compilation unit; the
// generator assembles synthetic trees (usings, namespace, test class,
// methods, statement lines) that the printer renders.
package ast
