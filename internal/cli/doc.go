// Package cli defines the Cobra command tree for gdbplug. Each file in this
// package builds one top-level command (update, list, load, etc.) against a
// per-invocation app. Commands delegate to the registry for plugin work and
// only handle flag parsing and I/O formatting.
package cli
