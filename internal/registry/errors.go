package registry

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	// ErrNotRegistered is returned for operations on an unknown plugin name.
	ErrNotRegistered = errors.New("plugin not registered")

	// ErrNotInstalled is returned when a plugin directory does not exist.
	ErrNotInstalled = errors.New("plugin not installed")

	// ErrSyncFailed is returned when cloning or updating a plugin fails.
	ErrSyncFailed = errors.New("plugin sync failed")

	// ErrNoInitFile is returned when no initialization file could be sourced.
	ErrNoInitFile = errors.New("no valid initialization file found")
)

// SyncError records a failed clone or update.
type SyncError struct {
	Name string
	Op   string // "clone" or "update"
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *SyncError) Unwrap() []error {
	return []error{ErrSyncFailed, e.Err}
}

// LoadError records an initialization file that existed but failed to source.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s from %s: %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
