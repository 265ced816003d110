//go:build !linux

package system

import "github.com/openpad/padview/internal/diag"

// Console mode switching only exists on Linux VTs; elsewhere these are no-ops.

func EnterGraphics(sink diag.Sink) {}
func LeaveGraphics(sink diag.Sink) {}
