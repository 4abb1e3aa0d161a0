// Package cli exposes the shop as cobra commands.
package cli

import (
	"context"
	"time"

	"github.com/mrops-br/simple-shop/internal/infrastructure/config"
	"github.com/mrops-br/simple-shop/internal/infrastructure/telemetry"
	"github.com/spf13/cobra"
)

type contextKey struct{}

// NewRootCommand builds the shop command tree
func NewRootCommand() *cobra.Command {
	var (
		storageDriver string
		storagePath   string
	)

	root := &cobra.Command{
		Use:           "shop",
		Short:         "Simple Shop storefront",
		Long:          "Browse the catalog, manage the local cart and start a checkout session",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if cmd.Flags().Changed("storage-driver") {
				cfg.Storage.Driver = storageDriver
			}
			if cmd.Flags().Changed("storage-path") {
				cfg.Storage.Path = storagePath
			}

			var telem *telemetry.Telemetry
			if cmd.Name() == "serve" && cfg.OTLP.Enabled {
				t, err := telemetry.NewTelemetry(cfg)
				if err != nil {
					return err
				}
				telem = t
			} else if cmd.Name() == "serve" {
				telem = telemetry.NewNoOpTelemetry(cfg, cmd.OutOrStdout())
			} else {
				// Keep command output clean; diagnostics go to stderr.
				telem = telemetry.NewNoOpTelemetry(cfg, cmd.ErrOrStderr())
			}

			a, err := newApp(cmd.Context(), cfg, telem)
			if err != nil {
				_ = telem.Shutdown(cmd.Context())
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), contextKey{}, a))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&storageDriver, "storage-driver", "", "storage backend: memory, file or sqlite (default from STORAGE_DRIVER)")
	root.PersistentFlags().StringVar(&storagePath, "storage-path", "", "storage directory (default from STORAGE_PATH)")

	root.AddCommand(
		NewServeCommand(),
		NewProductsCommand(),
		NewCartCommand(),
		NewSummaryCommand(),
		NewAddCommand(),
		NewIncrementCommand(),
		NewDecrementCommand(),
		NewRemoveCommand(),
		NewClearCommand(),
		NewCheckoutCommand(),
	)

	return root
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return execute(ctx, NewRootCommand())
}

// execute runs root and releases whatever the executed command wired, even
// when it failed.
func execute(ctx context.Context, root *cobra.Command) error {
	cmd, err := root.ExecuteContextC(ctx)
	if a := appFrom(cmd); a != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Close(closeCtx)
	}
	return err
}

func appFrom(cmd *cobra.Command) *app {
	if cmd == nil || cmd.Context() == nil {
		return nil
	}
	a, _ := cmd.Context().Value(contextKey{}).(*app)
	return a
}
