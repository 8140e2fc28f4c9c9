// Package plugfile reads the YAML declaration file that lists the plugins a
// user wants managed, optionally alongside explicit clone home, autoload
// policy and URI format settings. Files are validated against an embedded
// JSON schema before they are decoded.
package plugfile
