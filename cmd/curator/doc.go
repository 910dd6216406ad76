// Command curator sorts files from a watched source directory into a
// categorized target tree, quarantining suspicious files along the way.
//
// Common usage:
//
//	curator config init
//	curator sort
//	curator watch
//	curator status
//	curator quarantine list
package main
