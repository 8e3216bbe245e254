// Package engine drives the per-target sync cycle: read, parse,
// reconcile every block, render, and atomically rewrite. Targets are
// mutually independent, so they are processed by a bounded worker pool;
// each worker owns its target exclusively and failures are isolated per
// file. The engine is the only component with I/O side effects.
package engine
