// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package playground

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/wgpu/hal"
)

// Error taxonomy. Every error returned by this package matches exactly one
// of these with errors.Is, and keeps the underlying hal error as its cause.
var (
	// ErrDeviceUnavailable means no backend, adapter or logical device
	// could be obtained.
	ErrDeviceUnavailable = errors.New("playground: device unavailable")

	// ErrSurfaceCreationFailed means the window handle was rejected or the
	// initial swapchain could not be configured.
	ErrSurfaceCreationFailed = errors.New("playground: surface creation failed")

	// ErrShaderCompile means a shader stage failed to compile.
	// The concrete error is a *ShaderCompileError.
	ErrShaderCompile = errors.New("playground: shader compile error")

	// ErrLayoutMismatch means a vertex layout does not match the inputs
	// declared by the vertex shader.
	ErrLayoutMismatch = errors.New("playground: vertex layout does not match shader inputs")

	// ErrImageDecode means image bytes were malformed or had no alpha channel.
	ErrImageDecode = errors.New("playground: image decode error")

	// ErrSurfaceLost means the swapchain must be recreated before the next frame.
	ErrSurfaceLost = errors.New("playground: surface lost")

	// ErrTimeout means no surface image became available in time.
	ErrTimeout = errors.New("playground: surface acquire timeout")

	// ErrResizeRejected marks a degenerate resize request. Resize never
	// returns it; it only appears in logs when a zero axis is clamped.
	ErrResizeRejected = errors.New("playground: resize rejected")
)

// ShaderCompileError carries the compiler diagnostic for one shader stage.
type ShaderCompileError struct {
	Stage      string // "vertex" or "fragment"
	Label      string
	Diagnostic string
	cause      error
}

func newShaderCompileError(stage, label string, cause error) *ShaderCompileError {
	return &ShaderCompileError{
		Stage:      stage,
		Label:      label,
		Diagnostic: cause.Error(),
		cause:      errors.Mark(errors.WithDetailf(cause, "%s stage of %q", stage, label), ErrShaderCompile),
	}
}

// Error implements the error interface.
func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("playground: compile %s shader %q: %s", e.Stage, e.Label, e.Diagnostic)
}

// Unwrap returns the compiler error.
func (e *ShaderCompileError) Unwrap() error { return e.cause }

// Is reports whether target is ErrShaderCompile.
func (e *ShaderCompileError) Is(target error) bool { return target == ErrShaderCompile }

// markf wraps cause with a message and marks it with the taxonomy sentinel.
// A nil cause produces a fresh error that still matches mark.
func markf(cause, mark error, format string, args ...any) error {
	if cause == nil {
		return errors.Mark(errors.Newf(format, args...), mark)
	}
	return errors.Mark(errors.Wrapf(cause, format, args...), mark)
}

// classifyAcquireError maps surface acquisition failures onto the taxonomy.
// Unknown failures are reported as surface loss so that the recovery policy
// reconfigures the swapchain instead of treating them as fatal.
func classifyAcquireError(err error) error {
	switch {
	case errors.Is(err, hal.ErrTimeout), errors.Is(err, hal.ErrNotReady):
		return markf(err, ErrTimeout, "acquire surface texture")
	default:
		return markf(err, ErrSurfaceLost, "acquire surface texture")
	}
}

// IsFrameError reports whether err is a per-frame error that a caller may
// recover from by recreating the swapchain.
func IsFrameError(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrTimeout)
}
