// Package host connects the plugin registry to a GDB session. A Debugger
// accepts GDB commands and Mock records them for use outside GDB. Loader
// adapts a Debugger to the registry's script-loader contract, and Complete
// implements tab completion for the Plug command. Inside GDB the command
// glue printed by "gdbplug gdbinit" plays the Debugger role.
package host
