// Package testutil provides shared helpers for bento's tests: an in-memory
// project environment with a populated filesystem and a valid base
// configuration to mutate per test case.
package testutil
