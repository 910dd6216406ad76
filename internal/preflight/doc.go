// Package preflight provides readiness checks for the directories and disk
// capacity curator depends on.
//
// These checks run in two contexts:
//   - Engine startup calls RunAll before any scanning begins; a failed
//     check is fatal there, surfaced before the first file is touched.
//   - The CLI "curator status" command renders the same results so a
//     misconfigured path is visible without starting the watcher.
package preflight
