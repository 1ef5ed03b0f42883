// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package main

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/playground"
)

// surfaceTarget returns the HWND. The backend resolves the module instance
// itself when Display is zero.
func (w *window) surfaceTarget() (playground.SurfaceTarget, error) {
	hwnd := uintptr(unsafe.Pointer(w.glw.GetWin32Window()))
	if hwnd == 0 {
		return playground.SurfaceTarget{}, errors.New("no Win32 window handle")
	}
	return playground.SurfaceTarget{Window: hwnd}, nil
}
