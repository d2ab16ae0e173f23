//go:build unix

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// redirectStdIO duplicates the log file onto stdout and stderr so panics and
// prints from every goroutine land in the file, even with the console in
// graphics mode.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := openStdIOLog(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, std := range []*os.File{os.Stdout, os.Stderr} {
		if err := unix.Dup2(int(f.Fd()), int(std.Fd())); err != nil {
			return fmt.Errorf("dup2 onto %s: %w", std.Name(), err)
		}
	}
	return nil
}
