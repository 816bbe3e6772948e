// Package pipeline runs the three-stage read → generate → write batch over a
// list of C# source paths.
//
// Each stage is a bounded worker pool connected to the next one by a channel.
// A stage closes its output only after its input is closed and its in-flight
// work has drained, so Process returns exactly when the last write finishes.
// Failures are absorbed per item: an unreadable file continues as empty text,
// a generator error yields no units, and a failed write is dropped.
package pipeline
