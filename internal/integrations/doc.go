// Package integrations maps each supported AI tool to the configuration
// file it reads and the marker comment style used inside that file. The
// registry is the single place a new tool is added.
package integrations
