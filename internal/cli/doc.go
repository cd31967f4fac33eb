// Package cli is the command dispatcher: it parses the command line, runs
// one command against the stores and renders any error.
//
// Each invocation is a separate process. Everything that must survive
// between commands lives in the data directory.
package cli
