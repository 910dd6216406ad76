// Package classify decides which category tree bucket a file belongs to.
//
// Classification is a layered chain with first-match-wins semantics:
// a static extension table, a magic-byte sniff, a keyword heuristic for
// small text files, and an optional injected content classifier. The chain
// is a pure function of the file's name, size, and bytes; classification
// errors never propagate; an unreadable or unrecognizable file lands in
// the Unknown bucket so the pipeline keeps moving.
package classify
