//go:build linux

// Package system switches the console in and out of graphics mode so the
// framebuffer presenter is not fought over by the text-mode cursor.
package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/openpad/padview/internal/diag"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// SetGraphicsMode switches the active console to graphics mode to suppress
// the hardware cursor. Prefers /dev/tty (active VT), falls back to /dev/tty0.
func SetGraphicsMode() error { return setConsoleMode(kdGraphics, "KD_GRAPHICS") }

// RestoreTextMode returns the console to text mode.
func RestoreTextMode() error { return setConsoleMode(kdText, "KD_TEXT") }

func setConsoleMode(mode int, name string) error {
	paths := []string{"/dev/tty", "/dev/tty0"}
	var lastErr error
	for _, p := range paths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("%s on %s: %w", name, p, err)
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("%s failed: unknown error", name)
}

// HideCursor and ShowCursor write the ANSI escapes to the active VT.
func HideCursor() error { return writeVT("\x1b[?25l") }
func ShowCursor() error { return writeVT("\x1b[?25h") }

func writeVT(s string) error {
	paths := []string{"/dev/tty", "/dev/tty0"}
	var lastErr error
	for _, p := range paths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return fmt.Errorf("write VT failed: %v", lastErr)
	}
	return fmt.Errorf("write VT failed: unknown error")
}

// EnterGraphics applies graphics mode and hides the cursor, reporting
// failures without aborting; consoles without a VT just log and carry on.
func EnterGraphics(sink diag.Sink) {
	if err := SetGraphicsMode(); err != nil {
		sink.Errorf("tty", "KD_GRAPHICS failed: %v", err)
	}
	if err := HideCursor(); err != nil {
		sink.Errorf("tty", "hide cursor failed: %v", err)
	}
}

// LeaveGraphics restores text mode and the cursor.
func LeaveGraphics(sink diag.Sink) {
	if err := ShowCursor(); err != nil {
		sink.Errorf("tty", "show cursor failed: %v", err)
	}
	if err := RestoreTextMode(); err != nil {
		sink.Errorf("tty", "KD_TEXT failed: %v", err)
	}
}
