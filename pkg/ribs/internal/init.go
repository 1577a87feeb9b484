// Package internal contains the shared infrastructure for the ribs framework:
// logging and programmer-error assertions.
// Types and functions in this package are not part of the public API.
package internal
