package host

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
)

// Loader sources initialization files through a Debugger.
type Loader struct {
	debugger Debugger
	fs       afero.Fs
}

// NewLoader returns a Loader that checks files on fs before sourcing them
// through d.
func NewLoader(d Debugger, fs afero.Fs) *Loader {
	return &Loader{debugger: d, fs: fs}
}

// Source issues "source <path>" after confirming path is a readable file.
func (l *Loader) Source(ctx context.Context, path string) error {
	info, err := l.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("checking init file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("init file %s is a directory", path)
	}

	f, err := l.fs.Open(path)
	if err != nil {
		return fmt.Errorf("opening init file: %w", err)
	}
	f.Close()

	return l.debugger.Execute(ctx, "source "+path)
}
