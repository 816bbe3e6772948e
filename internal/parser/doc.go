// Package parser implements a structural parser for C# compilation units.
//
// It recognises using directives, block and file-scoped namespaces, type
// declarations (class, struct, interface, record, enum, delegate) and the
// headers of their members. Method bodies, property accessors and field
// initializers are skipped by bracket balancing, so the parser never needs an
// expression grammar. Top-level statements are skipped as well.
//
// Unbalanced brackets, unterminated literals and malformed declarations are
// reported as error diagnostics. Statement-level mistakes inside a balanced
// body ("int x = ;", "return return;", a missing ';') are not seen and
// produce no diagnostic.
package parser
