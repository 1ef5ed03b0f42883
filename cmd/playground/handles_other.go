// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows && !(linux && !wayland)

package main

import (
	"runtime"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/playground"
)

func (w *window) surfaceTarget() (playground.SurfaceTarget, error) {
	return playground.SurfaceTarget{}, errors.Newf("no surface support for %s/%s", runtime.GOOS, runtime.GOARCH)
}
