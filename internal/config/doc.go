// Package config resolves the process-wide plugin defaults (clone home,
// autoload policy, URI format) and the declaration file location. Explicit
// values win over GDB_PLUG_* environment variables, which win over built-in
// defaults under ~/.config/gdb/.
package config
