package host

import (
	"context"
	"fmt"
	"io"
)

// Debugger executes GDB commands.
type Debugger interface {
	Execute(ctx context.Context, command string) error
}

// Mock stands in for a GDB session. It records every command, echoes it to
// Out when set, and fails the commands listed in Fail.
type Mock struct {
	Out      io.Writer
	Fail     map[string]error
	Commands []string
}

// Execute records command and returns the configured failure, if any.
func (m *Mock) Execute(_ context.Context, command string) error {
	m.Commands = append(m.Commands, command)
	if m.Out != nil {
		fmt.Fprintf(m.Out, "[mockgdb] Executing command: %s\n", command)
	}
	if err, ok := m.Fail[command]; ok {
		return err
	}
	return nil
}
