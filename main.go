package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"dazzle/app"
	"dazzle/asset"
	"dazzle/font"
	"dazzle/hal"
	"dazzle/internal/buildinfo"
	"dazzle/internal/config"
)

func main() {
	cfg := config.Default()
	var (
		path    = flag.String("config", "", "TOML settings file. Flags override its values.")
		verbose = flag.Bool("v", false, "Log at debug level.")
		version = flag.Bool("version", false, "Print version and exit.")
	)
	flag.BoolVar(&cfg.Run.Headless, "headless", cfg.Run.Headless, "Run without a window.")
	flag.IntVar(&cfg.Run.Hz, "hz", cfg.Run.Hz, "Frame rate.")
	flag.Uint64Var(&cfg.Run.Ticks, "ticks", cfg.Run.Ticks, "Stop after N frames in headless mode (0 = run forever).")
	flag.IntVar(&cfg.Display.Width, "width", cfg.Display.Width, "Framebuffer width.")
	flag.IntVar(&cfg.Display.Height, "height", cfg.Display.Height, "Framebuffer height.")
	flag.StringVar(&cfg.Display.Format, "format", cfg.Display.Format, "Pixel format: rgba8888|xrgb8888|abgr8888.")
	flag.StringVar(&cfg.Display.FBDev, "fbdev", cfg.Display.FBDev, "Draw on a Linux framebuffer device such as /dev/fb0 (implies -headless).")
	flag.IntVar(&cfg.Display.Scale, "scale", cfg.Display.Scale, "Window scale factor.")
	flag.StringVar(&cfg.Demo.Font, "font", cfg.Demo.Font, "PSF1/PSF2 font file.")
	flag.StringVar(&cfg.Demo.Image, "image", cfg.Demo.Image, "PNG or BMP image to blit.")
	flag.StringVar(&cfg.Demo.Text, "text", cfg.Demo.Text, "Caption text.")
	flag.BoolVar(&cfg.Demo.Console, "console", cfg.Demo.Console, "Show the log on a terminal at the bottom of the screen.")
	flag.BoolVar(&cfg.Demo.Sheet, "sheet", cfg.Demo.Sheet, "Show every glyph of -font instead of the demo scene.")
	memLimit := flag.Int("mem", 0, "Renderer memory limit in bytes (0 = unlimited).")
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	if *path != "" {
		loaded, err := config.Load(*path)
		if err != nil {
			fatalf("%v", err)
		}
		cfg = loaded
		flag.Parse()
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}

	level, _ := cfg.SlogLevel()
	format, err := hal.ParsePixelFormat(cfg.Display.Format)
	if err != nil {
		fatalf("%v", err)
	}
	hcfg := hal.Config{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Format: format,
		FBDev:  cfg.Display.FBDev,
		Hz:     cfg.Run.Hz,
		Ticks:  cfg.Run.Ticks,
		Scale:  cfg.Display.Scale,
	}

	acfg := app.Config{
		Text:        cfg.Demo.Text,
		Console:     cfg.Demo.Console,
		Sheet:       cfg.Demo.Sheet,
		MemoryLimit: *memLimit,
		Level:       level,
	}
	if cfg.Demo.Font != "" {
		f, err := loadFont(cfg.Demo.Font)
		if err != nil {
			fatalf("font: %v", err)
		}
		acfg.Font = f
	}

	newApp := func(h hal.HAL) (func() error, error) {
		c := acfg
		if cfg.Demo.Image != "" {
			desc := h.Display().Framebuffer().Descriptor()
			img, err := loadImage(cfg.Demo.Image, desc.Width/3, desc.Height/3)
			if err != nil {
				return nil, fmt.Errorf("image: %w", err)
			}
			c.Image = img
		}
		return app.New(h, c)
	}

	if cfg.Run.Headless || cfg.Display.FBDev != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, hcfg, newApp); err != nil && !errors.Is(err, context.Canceled) {
			fatalf("%v", err)
		}
		return
	}

	if err := hal.RunWindow(hcfg, newApp); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func loadFont(path string) (*font.Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return font.Load(f)
}

func loadImage(path string, maxW, maxH int) (*asset.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return asset.Decode(f, maxW, maxH)
}
