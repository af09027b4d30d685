package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/operator-console/internal/config"
	"github.com/quocvuong92/operator-console/internal/display"
	"github.com/quocvuong92/operator-console/internal/logging"
	"github.com/quocvuong92/operator-console/internal/remote"
	"github.com/quocvuong92/operator-console/internal/terminal"
)

// The gateway client is what the interpreter calls for remote programs
var _ terminal.Remote = (*remote.Client)(nil)

// App holds the application state
type App struct {
	cfg     *config.Config
	verbose bool
	out     io.Writer
	// wait is the interpreter's wait hook; tests leave it nil
	wait terminal.WaitFunc
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg:  config.NewConfig(),
		out:  os.Stdout,
		wait: display.Wait,
	}
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(NewApp()).Execute(); err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree around app
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "operator [command]",
		Short: "Operator console for the Matrix gateway",
		Long: `Operator is a themed terminal. Type programs like whoami, ask("...") or
generate_key(length:24) and the console runs them, calling the gateway for
the ones that need a language model or mock data.

Examples:
  operator                                  # Interactive console
  operator 'ask("What is the Matrix?")'     # Run one program and exit
  operator --theme amber --no-boot          # Skip the boot sequence
  operator serve --port 3000                # Start the gateway
  operator config init                      # Write a default config file`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, args)
		},
	}
	rootCmd.SetOut(app.out)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&app.cfg.ServerURL, "server", "", "Gateway URL (default: http://localhost:3000)")
	rootCmd.Flags().StringVarP(&app.cfg.Theme, "theme", "t", "", "Color theme: matrix_green, amber, sentinel_blue")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render code blocks with syntax highlighting")
	rootCmd.Flags().BoolVar(&app.cfg.NoBoot, "no-boot", false, "Skip the boot sequence")

	rootCmd.AddCommand(NewServeCmd(app))
	rootCmd.AddCommand(NewConfigCmd(app))

	return rootCmd
}

// loadConfig layers configuration and applies logging settings
func (app *App) loadConfig() error {
	if err := app.cfg.Load(); err != nil {
		return err
	}
	app.configureLogging()
	return nil
}

func (app *App) configureLogging() {
	logging.Configure(app.cfg.LogLevel, app.cfg.LogFormat)
	if app.verbose {
		app.cfg.Debug = true
		logging.SetLevel(logging.LevelDebug)
	}
}

func (app *App) run(cmd *cobra.Command, args []string) error {
	if err := app.loadConfig(); err != nil {
		return err
	}

	if _, ok := display.LookupTheme(app.cfg.Theme); !ok && app.cfg.Theme != "" {
		display.ShowWarning(fmt.Sprintf("unknown theme %q, using %s", app.cfg.Theme, display.DefaultThemeName))
	}

	console := display.NewConsole(display.Options{
		Output:   app.out,
		Theme:    app.cfg.Theme,
		Markdown: app.cfg.Render,
	})
	session := app.newSession(console)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 1 {
		session.Execute(ctx, args[0])
		return nil
	}
	return app.runConsole(ctx, console, session)
}

func (app *App) newSession(console *display.Console) *terminal.Session {
	var opts []remote.Option
	if app.cfg.Debug {
		opts = append(opts, remote.WithDebugLogging(logging.DefaultLogger))
	}
	client := remote.New(app.cfg.ServerURL, opts...)

	logging.Debug("Console configured", logging.Fields{
		"server": client.BaseURL(),
		"theme":  console.Theme().Name,
	})

	return terminal.NewSession(terminal.Options{
		Renderer: console,
		Remote:   client,
		Wait:     app.wait,
		Theme:    console.Theme().Name,
	})
}
