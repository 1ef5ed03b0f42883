// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   glfw.Key
		want gpucontext.Key
	}{
		{glfw.KeyA, gpucontext.KeyA},
		{glfw.KeyZ, gpucontext.KeyZ},
		{glfw.Key0, gpucontext.Key0},
		{glfw.Key9, gpucontext.Key9},
		{glfw.KeyF1, gpucontext.KeyF1},
		{glfw.KeyF12, gpucontext.KeyF12},
		{glfw.KeyKP0, gpucontext.KeyNumpad0},
		{glfw.KeyKP9, gpucontext.KeyNumpad9},
		{glfw.KeyEscape, gpucontext.KeyEscape},
		{glfw.KeyGraveAccent, gpucontext.KeyGrave},
		{glfw.KeyKPEnter, gpucontext.KeyNumpadEnter},
		{glfw.KeyF25, gpucontext.KeyUnknown},
		{glfw.KeyUnknown, gpucontext.KeyUnknown},
	}
	for _, tt := range tests {
		if got := translateKey(tt.in); got != tt.want {
			t.Errorf("translateKey(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTranslateMods(t *testing.T) {
	got := translateMods(glfw.ModShift | glfw.ModAlt)
	if got != gpucontext.ModShift|gpucontext.ModAlt {
		t.Errorf("translateMods = %b", got)
	}
	if translateMods(0) != 0 {
		t.Error("no modifiers should translate to zero")
	}
}
