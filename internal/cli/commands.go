package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/simple-shop/internal/domain"
	shophttp "github.com/mrops-br/simple-shop/internal/infrastructure/http"
	"github.com/mrops-br/simple-shop/internal/infrastructure/http/handler"
	"github.com/spf13/cobra"
)

// ErrCheckoutFailed is returned by the checkout command when no session URL
// was obtained; the reason has already been printed.
var ErrCheckoutFailed = errors.New("checkout failed")

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), appFrom(cmd))
		},
	}
}

func runServer(ctx context.Context, a *app) error {
	logger := a.logger
	logger.Info("Starting Simple Shop")

	handlers := shophttp.Handlers{
		Products:   handler.NewProductHandler(a.products, logger),
		Cart:       handler.NewCartHandler(a.cart, a.pricing, a.settings, logger),
		Checkout:   handler.NewCheckoutHandler(a.checkout, logger),
		Storefront: handler.NewStorefrontHandler(a.cart, a.pricing, a.checkout, a.settings, logger),
	}
	server := shophttp.NewServer(&a.cfg.Server, handlers, a.telemetry.MeterProvider, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

// NewProductsCommand creates the products listing command
func NewProductsCommand() *cobra.Command {
	var (
		query   string
		sortKey string
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			out := cmd.OutOrStdout()
			for _, p := range a.products.ListProducts(cmd.Context(), query, sortKey) {
				fmt.Fprintf(out, "%s\t%s %s\t%s\t%s\n", p.ID, p.Icon, p.Name, p.Tag, p.PriceLabel)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by name, description or tag")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", "featured", "featured, priceAsc, priceDesc or nameAsc")
	return cmd
}

// NewCartCommand creates the cart display command
func NewCartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart with totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			printCart(cmd.OutOrStdout(), a.pricing.Summarize(a.cart.Load(cmd.Context())))
			return nil
		},
	}
}

// NewSummaryCommand prints the plain-text order summary
func NewSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the order summary as plain text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			fmt.Fprintln(cmd.OutOrStdout(), domain.OrderSummaryText(a.pricing.Summarize(a.cart.Load(cmd.Context()))))
			return nil
		},
	}
}

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add PRODUCT_ID",
		Short: "Add one of a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if !a.settings.Catalog.Has(args[0]) {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, args[0])
			}
			return mutate(cmd, func(ctx context.Context) (domain.Cart, error) {
				return a.cart.Add(ctx, args[0])
			})
		},
	}
}

// NewIncrementCommand creates the inc command
func NewIncrementCommand() *cobra.Command {
	return newDeltaCommand("inc", "Increase a line quantity", 1)
}

// NewDecrementCommand creates the dec command
func NewDecrementCommand() *cobra.Command {
	return newDeltaCommand("dec", "Decrease a line quantity, removing it at zero", -1)
}

func newDeltaCommand(use, short string, sign int) *cobra.Command {
	var by int

	cmd := &cobra.Command{
		Use:   use + " PRODUCT_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if by <= 0 {
				return fmt.Errorf("--by must be positive, got %d", by)
			}
			a := appFrom(cmd)
			return mutate(cmd, func(ctx context.Context) (domain.Cart, error) {
				return a.cart.ChangeQuantity(ctx, args[0], sign*by)
			})
		},
	}

	cmd.Flags().IntVar(&by, "by", 1, "amount to change the quantity by")
	return cmd
}

// NewRemoveCommand creates the remove command
func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove PRODUCT_ID",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			return mutate(cmd, func(ctx context.Context) (domain.Cart, error) {
				return a.cart.Remove(ctx, args[0])
			})
		},
	}
}

// NewClearCommand creates the clear command
func NewClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			return mutate(cmd, a.cart.Clear)
		},
	}
}

// NewCheckoutCommand creates the checkout command
func NewCheckoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Create a payment session and print its URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			result := <-a.checkout.CheckoutAsync(cmd.Context())
			if !result.OK() {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Message())
				return ErrCheckoutFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.URL)
			return nil
		},
	}
}

func mutate(cmd *cobra.Command, op func(ctx context.Context) (domain.Cart, error)) error {
	a := appFrom(cmd)
	cart, err := op(cmd.Context())
	if err != nil {
		return err
	}
	printCart(cmd.OutOrStdout(), a.pricing.Summarize(cart))
	return nil
}

func printCart(w io.Writer, s domain.Summary) {
	if len(s.Lines) == 0 {
		fmt.Fprintln(w, "カートは空です。")
	}
	for _, l := range s.Lines {
		fmt.Fprintf(w, "%s\t%s × %d\t%s\n", l.Product.ID, l.Product.Name, l.Quantity, domain.FormatYen(l.Total))
	}
	fmt.Fprintf(w, "点数: %d点\n", s.Count)
	fmt.Fprintf(w, "小計: %s\n", domain.FormatYen(s.Subtotal))
	fmt.Fprintf(w, "送料: %s\n", domain.FormatYen(s.Shipping))
	fmt.Fprintf(w, "合計: %s\n", domain.FormatYen(s.Total))
}
