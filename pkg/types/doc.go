// Package types defines the shared interfaces and data structures used
// across bento packages. Keeping them here avoids import cycles between
// the resolution, operation, and command layers.
package types
