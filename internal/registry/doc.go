// Package registry stores resolved plugin records by name and drives the
// external collaborators that install, update and source them. Every batch
// operation reports one status line per plugin and keeps going after
// individual failures.
package registry
