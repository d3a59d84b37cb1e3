package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/osint-shell/internal/api"
	"github.com/quocvuong92/osint-shell/internal/cache"
	"github.com/quocvuong92/osint-shell/internal/config"
	"github.com/quocvuong92/osint-shell/internal/constants"
	"github.com/quocvuong92/osint-shell/internal/display"
	"github.com/quocvuong92/osint-shell/internal/export"
	"github.com/quocvuong92/osint-shell/internal/history"
	"github.com/quocvuong92/osint-shell/internal/investigator"
	"github.com/quocvuong92/osint-shell/internal/logging"
	"github.com/quocvuong92/osint-shell/internal/session"
	"github.com/quocvuong92/osint-shell/internal/shell"
)

// App holds the application state
type App struct {
	cfg *config.Config
	out io.Writer
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
		out: os.Stdout,
	}
}

// Execute runs the root command
func Execute() {
	app := NewApp()
	if err := newRootCmd(app).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.AppName + " <target>",
		Short: "An interactive OSINT shell for analysing a social media profile",
		Long: `osint-shell is an interactive shell to analyse a social media account by
its username. Commands query the profile backend for the target and can save
their results as text or JSON files.

Examples:
  osint-shell someone                   # Interactive shell
  osint-shell -f -o ./out someone       # Save every result as a .txt file
  osint-shell -c info someone           # Run a single command and exit
  osint-shell -C someone                # Clear the stored session first`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			app.cfg.Target = args[0]
			app.run()
		},
	}

	rootCmd.Flags().BoolVarP(&app.cfg.ClearCookies, "cookies", "C", false, "Clear the stored session before starting")
	rootCmd.Flags().BoolVarP(&app.cfg.JSONDump, "json", "j", false, "Save command output as JSON files")
	rootCmd.Flags().BoolVarP(&app.cfg.FileOutput, "file", "f", false, "Save command output in text files")
	rootCmd.Flags().StringVarP(&app.cfg.Command, "command", "c", "", "Run a single command and exit")
	rootCmd.Flags().StringVarP(&app.cfg.OutputDir, "output", "o", "", "Directory for saved results and downloads (default: current directory)")
	rootCmd.Flags().BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render profile info as markdown")
	rootCmd.Flags().StringVar(&app.cfg.APIURL, "api-url", "", "Profile backend URL (default: $OSINT_API_URL or "+constants.DefaultAPIURL+")")
	rootCmd.Flags().BoolVar(&app.cfg.NoCache, "no-cache", false, "Disable the local response cache")
	rootCmd.Flags().StringVar(&app.cfg.LogFormat, "log-format", "", "Log format: text or json (default: text)")
	rootCmd.Flags().BoolVar(&app.cfg.NoColor, "no-color", false, "Disable colored output")

	return rootCmd
}

// fail reports a startup error and exits with status 1.
func (app *App) fail(err error) {
	display.ShowError(app.out, err.Error())
	os.Exit(1)
}

func (app *App) run() {
	if err := app.cfg.Validate(); err != nil {
		app.fail(err)
	}

	if app.cfg.NoColor {
		display.SetColor(false)
	}

	format := logging.FormatText
	if app.cfg.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.Configure(app.cfg.LogLevel, format)
	logger := logging.DefaultLogger

	interrupt := shell.InstallInterruptHandler(app.out, os.Exit)
	ctx := interrupt.Context()

	dataDir, err := config.DataDir()
	if err != nil {
		app.fail(err)
	}

	token, err := app.resolveSession(dataDir)
	if err != nil {
		app.fail(err)
	}

	var store *cache.Store
	if !app.cfg.NoCache {
		store = app.openCache()
	}
	if store != nil {
		defer store.Close()
	}

	opts := api.Options{
		BaseURL: app.cfg.APIURL,
		Session: token,
		Logger:  logger,
	}
	invOpts := []investigator.Option{
		investigator.WithOutput(app.out),
		investigator.WithLogger(logger),
		investigator.WithRender(app.cfg.Render),
		investigator.WithConcurrency(constants.DefaultLookupConcurrency),
	}
	if store != nil {
		opts.Cache = store
		invOpts = append(invOpts, investigator.WithCache(store))
	}

	if app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			logger.Warn("markdown rendering disabled", logging.Fields{"error": err})
		}
	}

	stdin := newStdinReader(os.Stdin)
	invOpts = append(invOpts, investigator.WithInput(stdin))
	inv := investigator.New(api.NewClient(opts), export.NewWriter(app.cfg.OutputDir), app.cfg.Target, invOpts...)
	if _, err := inv.Load(ctx); err != nil {
		app.fail(err)
	}

	modes := shell.NewModeState(app.cfg.FileOutput, app.cfg.JSONDump)
	dispatcher := newDispatcher(inv, modes, app.out, logger)

	if app.cfg.OneShot() {
		runOneShot(ctx, dispatcher, app.cfg.Command)
		return
	}

	printBanner(app.out, inv.Target())

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		if err := dispatcher.Run(ctx, stdin); err != nil {
			logger.Error("input failed", err)
		}
		return
	}

	hist := history.NewHistory(dataDir, constants.MaxHistoryEntries)
	newInteractiveSession(dispatcher, interrupt, hist, logger).run()
}

// resolveSession applies -C and returns the backend session token, empty
// when none is configured.
func (app *App) resolveSession(dataDir string) (string, error) {
	store := session.NewStore(dataDir)
	if app.cfg.ClearCookies {
		if err := store.Delete(); err != nil {
			return "", err
		}
		logging.Info("stored session cleared", logging.Fields{"path": store.Path()})
	}

	sess, err := store.Resolve(app.cfg.SessionToken)
	if errors.Is(err, session.ErrNoSession) {
		logging.Warn("no backend session, continuing anonymously")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	logging.Debug("session resolved", logging.Fields{"session": sess.ID})
	return sess.Token, nil
}

// openCache opens the response cache, or returns nil when it cannot be used.
func (app *App) openCache() *cache.Store {
	dir, err := config.CacheDir()
	if err != nil {
		logging.Warn("response cache disabled", logging.Fields{"error": err})
		return nil
	}
	store, err := cache.Open(dir)
	if err != nil {
		logging.Warn("response cache disabled", logging.Fields{"error": err})
		return nil
	}
	if n, err := store.Len(); err == nil {
		logging.Debug("response cache opened", logging.Fields{"dir": dir, "entries": n})
	}
	return store
}
