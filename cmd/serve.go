package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/operator-console/internal/api"
	"github.com/quocvuong92/operator-console/internal/gateway"
	"github.com/quocvuong92/operator-console/internal/logging"
)

// NewServeCmd creates the serve command
func NewServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the command gateway",
		Long: `Start the HTTP gateway that answers the console's remote programs
(ask, find_exit, generate_code, fabricate_data) and serves the static assets.

The upstream API key for the selected provider must be set, either in the
environment (GROQ_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY), in a .env file,
or in the config file.

Examples:
  operator serve
  operator serve --port 8080 --public ./public
  operator serve --provider gemini --model gemini-2.0-flash`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.serve(ctx, nil)
		},
	}

	cmd.Flags().IntVar(&app.cfg.Port, "port", 0, "Port to listen on (default: 3000, env PORT)")
	cmd.Flags().StringVar(&app.cfg.PublicDir, "public", "", "Static asset directory (default: public)")
	cmd.Flags().StringVar(&app.cfg.Provider, "provider", "", "Upstream provider: groq, openai, gemini (default: groq)")
	cmd.Flags().StringVarP(&app.cfg.Model, "model", "m", "", "Upstream model name")
	cmd.Flags().StringVar(&app.cfg.BaseURL, "base-url", "", "Base URL of an OpenAI-compatible API")

	return cmd
}

// serve validates configuration, binds the port and runs the gateway until
// ctx is done. A nil ln listens on the configured port.
func (app *App) serve(ctx context.Context, ln net.Listener) error {
	if err := app.cfg.Validate(); err != nil {
		return err
	}
	app.configureLogging()

	completer, err := api.NewClient(ctx, app.cfg)
	if err != nil {
		return err
	}

	if ln == nil {
		ln, err = net.Listen("tcp", app.cfg.Addr())
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", app.cfg.Addr(), err)
		}
	}

	srv := gateway.New(gateway.Options{
		Completer: completer,
		Logger:    logging.DefaultLogger,
		PublicDir: app.cfg.PublicDir,
	})

	port := app.cfg.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	rule := strings.Repeat("-", 52)
	fmt.Fprintln(app.out, rule)
	fmt.Fprintf(app.out, "Operator, the server is listening on port %d\n", port)
	fmt.Fprintf(app.out, ">> CONNECTION ESTABLISHED WITH %s NETWORK <<\n", strings.ToUpper(app.cfg.Provider))
	fmt.Fprintln(app.out, rule)

	logging.Info("Gateway listening", logging.Fields{
		"addr":       ln.Addr().String(),
		"provider":   app.cfg.Provider,
		"model":      app.cfg.Model,
		"public_dir": app.cfg.PublicDir,
	})

	return srv.Serve(ctx, ln)
}
