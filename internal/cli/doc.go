// Package cli wires the rulesync commands. Each command lives in its own
// file and registers itself with the root command in an init function.
package cli
