//go:build !linux

package system

import "context"

// WatchKeys is only supported on Linux.
func WatchKeys(ctx context.Context, l logger, onKey func(code uint16)) {
	if l != nil {
		l.Infof("input", "evdev keyboard input not supported on this platform")
	}
}
