package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"altscore/internal/altdata"
	"altscore/internal/config"
	"altscore/internal/enrichment"
	"altscore/internal/income"
	"altscore/internal/scheduler"
	"altscore/internal/scoring"
	"altscore/internal/service"
	"altscore/internal/storage"
	"altscore/internal/webhook"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newSource() enrichment.TransactionSource {
	return enrichment.NewClient(enrichment.ClientOptions{
		BaseURL:   a.Config.Enrichment.BaseURL,
		APIKey:    a.Config.Enrichment.APIKey,
		Timeout:   a.Config.Enrichment.RequestTimeout,
		UserAgent: a.Config.Enrichment.UserAgent,
	}, a.Logger)
}

func (a *App) newEngines() (*scoring.Engine, *income.Engine) {
	collector := altdata.NewCollector(altdata.StaticProviders(), a.Config.Providers.FetchTimeout, a.Logger)
	return scoring.NewEngine(collector, a.Logger), income.NewEngine(a.Logger)
}

func (a *App) newNotifier() webhook.Notifier {
	if a.Config.Webhook.Enabled {
		return webhook.NewHTTPNotifier(a.Config.Webhook.URL, a.Config.Webhook.RequestTimeout, a.Logger)
	}
	return nil
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

func (a *App) newService(sched *scheduler.Scheduler, source enrichment.TransactionSource, store *storage.Store) *service.Service {
	scorer, verifier := a.newEngines()

	var scores storage.ScoreStore
	var verifications storage.VerificationStore
	if store != nil {
		scores = store
		verifications = store
	}

	return service.New(a.Config, sched, source, scorer, verifier, scores, verifications, a.newNotifier(), a.Logger)
}

// Run executes the long-running re-scoring service.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database.dsn must be configured for the re-scoring service")
	}
	if closeStore != nil {
		defer closeStore()
	}

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Scheduler.Interval,
		AlignToStart: a.Config.Scheduler.AlignToBucket,
		StartupDelay: a.Config.Scheduler.StartupDelay,
	}, a.Logger)

	svc := a.newService(sched, a.newSource(), store)

	a.Logger.Info().Msg("starting re-scoring service")
	err = svc.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("service terminated with error")
		return err
	}

	a.Logger.Info().Msg("re-scoring service stopped")
	return nil
}

// ScoreOptions hold parameters for a one-off scoring run.
type ScoreOptions struct {
	UserID                 string
	PhoneNumber            string
	NationalID             string
	IncludeAlternativeData bool
	MonthlyExpenses        *decimal.Decimal
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}

// ExportOptions hold parameters for exporting a user's score history.
type ExportOptions struct {
	UserID    string
	From      *time.Time
	To        *time.Time
	PNGPath   string
	CSVPath   string
	MaxPoints int
}

// SimulateOptions configure the simulate command.
type SimulateOptions struct {
	UserID                 string
	Months                 int
	MonthlyIncome          decimal.Decimal
	IncludeAlternativeData bool
}
