// Package gitsync clones and updates plugin repositories by running the git
// binary.
package gitsync
