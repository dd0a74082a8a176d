// Package manifest turns a loaded configuration into a concrete bundle
// resolution: which data entries exist and go in, which are missing and get
// dropped, and the hidden-import and exclusion lists the external bundler
// needs to be told about.
//
// Resolution is a pure filesystem-read pass. Nothing is copied or built
// here; the bundler and postbuild packages consume the result.
package manifest
