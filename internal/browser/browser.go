// Package browser owns the Playwright lifecycle for the harness: driver
// startup, Chromium launch, and page/context creation with the configured
// default timeouts applied.
package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/config"
	"github.com/probelab/uiharness/internal/obs"
)

var log = obs.Pkg("browser")

// Runtime holds a running Playwright driver and a launched browser.
type Runtime struct {
	cfg *config.Config

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

// New creates an unstarted runtime for cfg.
func New(cfg *config.Config) *Runtime {
	return &Runtime{cfg: cfg}
}

// Start launches the Playwright driver and a Chromium browser. Idempotent.
func (r *Runtime) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright driver: %w", err)
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(r.cfg.Headless),
	}
	if r.cfg.SlowMo > 0 {
		opts.SlowMo = playwright.Float(float64(time.Duration(r.cfg.SlowMo).Milliseconds()))
	}
	b, err := pw.Chromium.Launch(opts)
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("launch chromium: %w", err)
	}

	r.pw = pw
	r.browser = b
	log.Info("browser launched", "headless", r.cfg.Headless, "slow_mo", r.cfg.SlowMo)
	return nil
}

// NewPage creates a page with the configured default timeouts.
func (r *Runtime) NewPage() (playwright.Page, error) {
	r.mu.Lock()
	b := r.browser
	r.mu.Unlock()
	if b == nil {
		return nil, fmt.Errorf("browser runtime not started")
	}

	page, err := b.NewPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	page.SetDefaultTimeout(r.cfg.TimeoutMillis())
	page.SetDefaultNavigationTimeout(r.cfg.TimeoutMillis())
	return page, nil
}

// NewContext creates an isolated browser context with the configured
// defaults. Video recording is enabled when the config asks for it and a
// videosDir is provided.
func (r *Runtime) NewContext(videosDir string) (playwright.BrowserContext, error) {
	r.mu.Lock()
	b := r.browser
	r.mu.Unlock()
	if b == nil {
		return nil, fmt.Errorf("browser runtime not started")
	}

	opts := playwright.BrowserNewContextOptions{}
	if r.cfg.RecordVideo && videosDir != "" {
		opts.RecordVideo = &playwright.RecordVideo{Dir: videosDir}
	}
	ctx, err := b.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	ctx.SetDefaultTimeout(r.cfg.TimeoutMillis())
	ctx.SetDefaultNavigationTimeout(r.cfg.TimeoutMillis())
	if r.cfg.CaptureTrace {
		err := ctx.Tracing().Start(playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
		})
		if err != nil {
			_ = ctx.Close()
			return nil, fmt.Errorf("start tracing: %w", err)
		}
	}
	return ctx, nil
}

// SaveTrace stops tracing on ctx and writes the trace archive to path. A
// no-op when tracing was not enabled in the config.
func (r *Runtime) SaveTrace(ctx playwright.BrowserContext, path string) error {
	if !r.cfg.CaptureTrace {
		return nil
	}
	if err := ctx.Tracing().Stop(path); err != nil {
		return fmt.Errorf("save trace: %w", err)
	}
	log.Info("trace saved", "path", path)
	return nil
}

// Close tears down the browser and driver. Safe to call when never started.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		_ = r.browser.Close()
		r.browser = nil
	}
	if r.pw != nil {
		_ = r.pw.Stop()
		r.pw = nil
	}
}

// Install downloads the Playwright driver and Chromium. Used by the CLI.
func Install() error {
	return playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	})
}
