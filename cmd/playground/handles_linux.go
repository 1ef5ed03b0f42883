// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux && !wayland

package main

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/playground"
)

// surfaceTarget returns the X11 Display* and window XID.
func (w *window) surfaceTarget() (playground.SurfaceTarget, error) {
	display := uintptr(unsafe.Pointer(glfw.GetX11Display()))
	xid := uintptr(w.glw.GetX11Window())
	if display == 0 || xid == 0 {
		return playground.SurfaceTarget{}, errors.New("no X11 window handle")
	}
	return playground.SurfaceTarget{Display: display, Window: xid}, nil
}
