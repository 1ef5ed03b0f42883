// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/playground"
	"github.com/gogpu/playground/config"
)

// window wraps a GLFW window with no client API and forwards its events to
// a renderer. All methods must be called from the main thread.
type window struct {
	glw      *glfw.Window
	renderer *playground.Renderer
	lastErr  error
}

func openWindow(cfg config.Window) (*window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw init")
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glw, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}
	w := &window{glw: glw}

	glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.renderer == nil || width == 0 || height == 0 {
			return
		}
		if err := w.renderer.Resize(width, height); err != nil {
			w.lastErr = err
		}
	})
	glw.SetKeyCallback(func(glw *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if key == glfw.KeyEscape {
			glw.SetShouldClose(true)
			return
		}
		if w.renderer != nil {
			w.renderer.Input(playground.Event{
				Kind: playground.EventKey,
				Key:  translateKey(key),
				Mods: translateMods(mods),
			})
		}
	})
	glw.SetCursorPosCallback(func(glw *glfw.Window, x, y float64) {
		if w.renderer == nil {
			return
		}
		// Cursor positions are in screen coordinates; the swapchain is in
		// pixels.
		ww, wh := glw.GetSize()
		fw, fh := glw.GetFramebufferSize()
		if ww == 0 || wh == 0 {
			return
		}
		w.renderer.Input(playground.Event{
			Kind: playground.EventCursorMoved,
			X:    x * float64(fw) / float64(ww),
			Y:    y * float64(fh) / float64(wh),
		})
	})
	return w, nil
}

// bind starts forwarding events to r.
func (w *window) bind(r *playground.Renderer) { w.renderer = r }

func (w *window) framebufferSize() (int, int) { return w.glw.GetFramebufferSize() }

func (w *window) minimized() bool {
	width, height := w.glw.GetFramebufferSize()
	return width == 0 || height == 0
}

func (w *window) shouldClose() bool { return w.glw.ShouldClose() }

func (w *window) pollEvents() { glfw.PollEvents() }

func (w *window) waitEvents() { glfw.WaitEvents() }

// err returns and clears the first error raised inside a callback.
func (w *window) err() error {
	err := w.lastErr
	w.lastErr = nil
	return err
}

func (w *window) close() {
	w.renderer = nil
	w.glw.Destroy()
	glfw.Terminate()
}

// translateMods maps GLFW modifier bits onto gpucontext modifiers.
func translateMods(m glfw.ModifierKey) gpucontext.Modifiers {
	var out gpucontext.Modifiers
	if m&glfw.ModShift != 0 {
		out |= gpucontext.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= gpucontext.ModControl
	}
	if m&glfw.ModAlt != 0 {
		out |= gpucontext.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= gpucontext.ModSuper
	}
	if m&glfw.ModCapsLock != 0 {
		out |= gpucontext.ModCapsLock
	}
	if m&glfw.ModNumLock != 0 {
		out |= gpucontext.ModNumLock
	}
	return out
}
