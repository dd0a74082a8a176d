// Package operations defines the staging operations bento performs after
// the external bundler has run, and the executor that applies them.
//
// Handlers (the postbuild planner, application metadata generation) only
// declare operations; the executor decides how to perform them, honors
// dry-run, and reports every step.
package operations
