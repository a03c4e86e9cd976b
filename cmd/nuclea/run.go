package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/nuclea"
	"github.com/phanxgames/nuclea/internal/config"
	"github.com/phanxgames/nuclea/internal/watch"
	"github.com/phanxgames/nuclea/site"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the page in a window",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.String("content", "", "content file (.yaml, .yml or .toml); default is the embedded page")
	f.Int("width", 0, "window width")
	f.Int("height", 0, "window height")
	f.Bool("watch", false, "reload the content file when it changes")
	f.Bool("fps", false, "show the FPS widget")
	f.Bool("debug", false, "log per-frame stats")
	f.String("screenshots", "", "screenshot directory")
	f.String("script", "", "test script to play (YAML or JSON); exits when done")

	for key, flag := range map[string]string{
		"content":        "content",
		"width":          "width",
		"height":         "height",
		"watch":          "watch",
		"show_fps":       "fps",
		"debug":          "debug",
		"screenshot_dir": "screenshots",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	content, err := loadContent(cfg.Content)
	if err != nil {
		return err
	}
	fonts, err := site.LoadFonts()
	if err != nil {
		return err
	}

	scene := nuclea.NewScene()
	scene.SetLogger(log)
	scene.SetDebugMode(cfg.Debug)
	scene.ClearColor = site.ColorBackground
	scene.ScreenshotDir = cfg.ScreenshotDir

	exitOnDone := false
	if path, _ := cmd.Flags().GetString("script"); path != "" {
		runner, err := loadScript(path)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
		exitOnDone = true
	}

	page := site.NewPage(content, &site.Theme{Fonts: fonts}, log)
	if err := page.Attach(scene); err != nil {
		return err
	}
	defer page.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	var reloads <-chan watch.Reload
	if cfg.Watch && cfg.Content != "" {
		w, err := watch.New(cfg.Content, site.Load, log)
		if err != nil {
			return err
		}
		reloads = w.Reloads
		g.Go(func() error { return w.Run(gctx) })
	}

	scene.SetUpdateFunc(func() error {
		select {
		case <-gctx.Done():
			return ebiten.Termination
		default:
		}
		drainReloads(reloads, page, log)
		return nil
	})

	runErr := nuclea.Run(scene, nuclea.RunConfig{
		Title:            content.Brand,
		Width:            cfg.Width,
		Height:           cfg.Height,
		Resizable:        cfg.Resizable,
		ShowFPS:          cfg.ShowFPS,
		ExitOnScriptDone: exitOnDone,
	})
	stop()
	return errors.Join(runErr, g.Wait())
}

// drainReloads applies every reload waiting on ch without blocking. Bad
// content keeps the current page.
func drainReloads(ch <-chan watch.Reload, page *site.Page, log *zap.Logger) {
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return
			}
			if r.Err != nil {
				log.Warn("keeping current content", zap.Error(r.Err))
				continue
			}
			if err := page.Reload(r.Content); err != nil {
				log.Warn("reload failed", zap.Error(err))
			}
		default:
			return
		}
	}
}

func loadContent(path string) (*site.Content, error) {
	if path == "" {
		return site.DefaultContent()
	}
	return site.Load(path)
}

func loadScript(path string) (*nuclea.TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test script: %w", err)
	}
	return nuclea.LoadTestScript(data)
}
