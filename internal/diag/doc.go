// Package diag defines the diagnostic model shared by the lexer and the parser.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// textual ID (LEX1001, SYN2001, ...), a short Message, the Primary span and
// optional Notes pointing at related locations.
//
// Producers emit through a Reporter so they do not depend on storage;
// BagReporter collects into a Bag, which supports sorting and deduplication.
// The generator only asks the bag whether any error-severity entry exists
// and quotes the first one in its error message.
package diag
