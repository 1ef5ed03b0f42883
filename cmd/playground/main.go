// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command playground opens a window and draws one of the playground
// variants until the window is closed or Escape is pressed.
//
//	playground -variant textured -width 1024 -height 768
//	playground -config playground.toml -v
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/playground"
	"github.com/gogpu/playground/config"

	_ "github.com/gogpu/wgpu/hal/allbackends"
)

func init() {
	// Window system calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		variant    = flag.String("variant", "", "variant to draw: minimal, colored, textured, projected")
		width      = flag.Int("width", 0, "initial window width")
		height     = flag.Int("height", 0, "initial window height")
		imagePath  = flag.String("image", "", "image file for textured variants")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *variant != "" {
		cfg.Variant = *variant
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *imagePath != "" {
		cfg.Image = *imagePath
	}
	if *verbose {
		cfg.Verbose = true
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	playground.SetLogger(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("playground failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	v, err := playground.ParseVariant(cfg.Variant)
	if err != nil {
		return err
	}
	power, err := cfg.PowerPreference()
	if err != nil {
		return err
	}
	present, err := cfg.PresentMode()
	if err != nil {
		return err
	}

	// The image decodes on a worker while the main thread opens the
	// window and the device.
	g, gctx := errgroup.WithContext(ctx)
	var decoded *image.NRGBA
	if v.UsesTexture() {
		g.Go(func() error {
			data := playground.DefaultImage
			if cfg.Image != "" {
				var err error
				if data, err = os.ReadFile(cfg.Image); err != nil {
					return errors.Wrap(err, "read image")
				}
			}
			img, err := playground.DecodeImage(data)
			if err != nil {
				return err
			}
			decoded = img
			return nil
		})
	}

	win, err := openWindow(cfg.Window)
	if err != nil {
		_ = g.Wait()
		return err
	}
	defer win.close()

	target, err := win.surfaceTarget()
	if err != nil {
		_ = g.Wait()
		return err
	}
	fbw, fbh := win.framebufferSize()
	session, err := playground.NewSession(gctx, target, fbw, fbh,
		playground.WithPowerPreference(power),
		playground.WithPresentMode(present),
		playground.WithDebug(cfg.GPU.Debug),
	)
	if err != nil {
		_ = g.Wait()
		return err
	}
	defer session.Destroy()

	if err := g.Wait(); err != nil {
		return err
	}

	opts := []playground.RendererOption{playground.WithClearColor(cfg.ClearColor())}
	if cfg.Render.CursorClear {
		opts = append(opts, playground.WithCursorClearColor())
	}
	scene, err := playground.Setup(ctx, session, v, playground.Assets{Decoded: decoded}, opts...)
	if err != nil {
		return err
	}
	defer scene.Destroy()

	win.bind(scene.Renderer)
	log.Info("running", "variant", v, "width", fbw, "height", fbh)

	for !win.shouldClose() {
		win.pollEvents()
		if err := win.err(); err != nil {
			return err
		}
		if win.minimized() {
			win.waitEvents()
			continue
		}
		if _, err := scene.Renderer.RenderOrRecover(); err != nil {
			return err
		}
	}

	st := scene.Renderer.Stats()
	log.Info("stopped", "frames", st.Frames, "dropped", st.Dropped, "avg", st.Average)
	return nil
}
