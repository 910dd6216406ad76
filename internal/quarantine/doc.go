// Package quarantine isolates files that fail cheap structural risk checks
// and supports restoring them.
//
// The guard's verdicts are advisory only. The heuristics catch a few classic
// disguise patterns (double-duty extensions, autorun droppers, executable
// headers behind document extensions) and nothing more; they are not a
// signature database and must never be treated as a security boundary.
// Quarantined files keep their bytes untouched and the rename is reversible
// through Restore.
package quarantine
