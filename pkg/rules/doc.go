// Package rules implements exclusion matching for the bundle manifest.
//
// Exclusions are module or file names, optionally with glob patterns
// ("PyQt*"). The matcher compiles the list once and answers membership for
// plain names and for relative paths, where any path segment may match.
package rules
