// Package stagepage serves a single-page artist site whose interactive state
// lives on the server. Each open page mounts a ui.View; the page script posts
// browser events to it and applies the returned updates.
package stagepage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/eringen/stagepage/content"
)

// App is the central stagepage application. It wires together the view
// registry, failure log, asset cache, handlers and middleware.
type App struct {
	Config   SiteConfig
	Content  *content.Content
	Echo     *echo.Echo
	Views    *ViewRegistry
	Failures *FailureLog

	assets        *AssetCache
	limiter       *EventLimiter
	pageLimiter   *EventLimiter
	customRoutes  []func(*App)
	ownsFailures  bool
	stopRetention func()
	ready         bool
}

// New creates a new App serving c. A nil c uses the built-in content.
func New(cfg SiteConfig, c *content.Content, opts ...Option) *App {
	cfg.setDefaults()

	if c == nil {
		c = content.Default(cfg.Theme)
	}
	if cfg.Theme != "" && cfg.Theme != c.Theme {
		themed := *c
		themed.Theme = cfg.Theme
		c = &themed
	}

	a := &App{
		Config:  cfg,
		Content: c,
		Echo:    echo.New(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup validates the configuration, opens the failure log and registers
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo with httptest.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return errors.New("stagepage: SessionSecret is required")
	}
	if err := a.Content.Validate(); err != nil {
		return fmt.Errorf("stagepage: invalid content: %w", err)
	}

	if a.Failures == nil && !a.Config.DisableFailureLog {
		store, err := OpenFailureLog(a.Config.FailureLogPath)
		if err != nil {
			return fmt.Errorf("stagepage: init failure log: %w", err)
		}
		a.Failures = store
		a.ownsFailures = true
		a.stopRetention = store.StartRetention(a.Config.FailureRetention, time.Hour)
	}

	a.Views = NewViewRegistry(a.Content, a.Config.ViewTTL, a.Config.MaxViews)
	a.limiter = NewEventLimiter(a.Config.EventsPerMin, time.Minute)
	a.pageLimiter = NewEventLimiter(a.Config.PagesPerMin, time.Minute)
	a.assets = NewAssetCache(a.Config.AssetCacheTTL)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the app up and serves until ctx is cancelled, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", a.Config.Addr).Str("url", a.Config.URL).Str("theme", a.Content.Theme).Msg("serving")
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stagepage: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Page script and stylesheet, embedded in the binary.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/*", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS)))))

	e.GET("/assets/*", a.handleAsset)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", a.handleHealth)

	e.GET("/", a.handleHome)
	e.POST("/ui/events/", a.handleEvent)
	e.POST("/ui/unmount/", a.handleUnmount)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Views != nil {
		a.Views.Close()
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.pageLimiter != nil {
		a.pageLimiter.Stop()
	}
	if a.stopRetention != nil {
		a.stopRetention()
	}
	if a.Failures != nil && a.ownsFailures {
		return a.Failures.Close()
	}
	return nil
}
