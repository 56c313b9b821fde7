package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/cache"
	"github.com/five82/atlas/internal/config"
	"github.com/five82/atlas/internal/favorites"
	"github.com/five82/atlas/internal/i18n"
	"github.com/five82/atlas/internal/kv"
	"github.com/five82/atlas/internal/logging"
	"github.com/five82/atlas/internal/metrics"
	"github.com/five82/atlas/internal/notify"
	"github.com/five82/atlas/internal/request"
	"github.com/five82/atlas/internal/restcountries"
	"github.com/five82/atlas/internal/state"
	"github.com/five82/atlas/internal/theme"
	"github.com/five82/atlas/internal/ui"
)

// storagePollInterval is how often preference writes from other atlas
// processes are picked up.
const storagePollInterval = 2 * time.Second

// Options configure the atlas application.
type Options struct {
	ConfigPath  string
	StoragePath string // overrides storage_path when set
	Locale      string // persisted as the UI language when set
}

// App owns every long-lived component.
type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Registry   *prometheus.Registry
	Metrics    *metrics.Metrics
	Client     *restcountries.Client
	Storage    *kv.SQLite
	Notices    *notify.Center
	Theme      *theme.Theme
	Locale     *theme.Locale
	Favorites  *favorites.Favorites
	Comparison *favorites.Comparison
	Store      *state.Store

	closeLog func() error
}

// New loads configuration and wires the data layer, preferences and the
// derived view together.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if path := strings.TrimSpace(opts.StoragePath); path != "" {
		cfg.StoragePath = path
	}

	logger, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	a := &App{Config: cfg, Logger: logger, closeLog: closeLog}

	a.Registry = prometheus.NewRegistry()
	a.Metrics = metrics.New(a.Registry)

	responses := cache.New[any](cfg.CacheTTL(),
		cache.WithObserver(a.Metrics),
		cache.WithMaxEntries(cfg.CacheMaxEntries),
	)
	coordinator := request.NewCoordinator(
		request.WithObserver(a.Metrics),
		request.WithLogger(logger.With(slog.String("component", "request"))),
	)
	a.Client, err = restcountries.NewClient(restcountries.Options{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.RequestTimeout(),
		Policy:      request.Policy{Attempts: cfg.RetryAttempts, BaseDelay: cfg.RetryDelay()},
		Cache:       responses,
		Coordinator: coordinator,
		Logger:      logger.With(slog.String("component", "restcountries")),
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("init client: %w", err)
	}

	a.Storage, err = kv.OpenSQLite(kv.SQLiteOptions{
		Path:         cfg.StoragePath,
		PollInterval: storagePollInterval,
		Logger:       logger.With(slog.String("component", "kv")),
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	a.wirePreferences(opts.Locale)
	return a, nil
}

func (a *App) wirePreferences(localeOverride string) {
	cfg := a.Config
	logger := a.Logger

	defLocale, ok := i18n.Parse(cfg.DefaultLocale)
	if !ok {
		defLocale = i18n.Default()
	}
	a.Locale = theme.NewLocale(a.Storage, defLocale, func(tag language.Tag) {
		logger.Info("locale changed elsewhere", slog.String("locale", i18n.Code(tag)))
	})
	if tag, ok := i18n.Parse(localeOverride); ok {
		if err := a.Locale.Set(tag); err != nil {
			logger.Warn("persist locale override failed", slog.Any("error", err))
		}
	}
	a.Theme = theme.NewTheme(a.Storage, theme.DesktopPreference{Fallback: theme.TerminalPreference{}}, func(m theme.Mode) {
		logger.Info("theme changed", slog.String("mode", string(m)))
	})

	a.Notices = notify.New()
	a.Store = state.NewStore(a.Client, state.Options{
		Sink:     a.Notices,
		Locale:   a.Locale.Tag,
		Logger:   logger.With(slog.String("component", "state")),
		Observer: a.Metrics,
	})

	label := func(code string) string {
		if c, ok := a.Store.Country(code); ok {
			return c.DisplayName(a.Locale.Code())
		}
		return code
	}
	a.Favorites = favorites.NewFavorites(a.Storage, favorites.Options{
		Max:    cfg.MaxFavorites,
		Sink:   a.Notices,
		Locale: a.Locale.Tag,
		Label:  label,
		Logger: logger,
	})
	a.Comparison = favorites.NewComparison(a.Storage, favorites.Options{
		Max:    cfg.MaxComparison,
		Sink:   a.Notices,
		Locale: a.Locale.Tag,
		Label:  label,
		Logger: logger,
	})
}

// Close releases preference bindings, storage and the log file, and writes
// the metrics file when configured.
func (a *App) Close() error {
	var errs []error
	if a.Client != nil {
		a.Client.CancelAllInFlight()
	}
	if a.Favorites != nil {
		a.Favorites.Close()
		a.Comparison.Close()
		a.Theme.Close()
		a.Locale.Close()
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close preferences: %w", err))
		}
	}
	if a.Registry != nil {
		if err := metrics.WriteFile(a.Config.MetricsFile, a.Registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if a.closeLog != nil {
		if err := a.closeLog(); err != nil {
			errs = append(errs, fmt.Errorf("close log: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Run boots the explorer until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	a, err := New(opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()

	a.Logger.Info("atlas starting",
		slog.String("api", a.Config.APIBaseURL),
		slog.String("storage", a.Config.StoragePath),
		slog.String("locale", a.Locale.Code()),
	)

	StartRefresher(ctx, a.Store, a.Config.RefreshInterval(), a.Logger)

	return ui.Run(ui.Options{
		Context:    ctx,
		Client:     a.Client,
		Store:      a.Store,
		Favorites:  a.Favorites,
		Comparison: a.Comparison,
		Theme:      a.Theme,
		Locale:     a.Locale,
		Notices:    a.Notices,
		Metrics:    a.Metrics,
		LogFile:    a.Config.LogFile,
		PerPage:    a.Config.ItemsPerPage,
		Logger:     a.Logger.With(slog.String("component", "ui")),
	})
}
