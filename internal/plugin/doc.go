// Package plugin turns terse plugin declarations into resolved plugin records.
// It classifies a repository identifier as local or remote, infers the plugin
// name and on-disk directory, expands owner/name shorthand into a clone URI, and
// evaluates the comma-separated autoload policy against the plugin's name and
// groups. Nothing in this package touches the filesystem.
package plugin
