// Package main provides the storefront binary: a CLI over the storefront
// state and the gRPC server that exposes it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/catalog"
	"storefront/config"
	"storefront/metrics"
	"storefront/server"
	"storefront/shop"
	"storefront/storage"
)

const (
	Version = "0.1.0"
	appName = "storefront"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	remote     string

	cfg    *config.Config
	logger *zap.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Storefront cart, pricing and order lifecycle",
		Long: `storefront manages a single shopper's cart, coupon, session, wishlist
and order history against a compiled-in catalog.

State is kept in the configured storage backend (memory, file, sqlite or
nats), so successive invocations see each other's changes. With --remote
every command is sent to a running "storefront serve" instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.remote, "remote", "", "Send commands to a storefront server at this endpoint")

	cmd.AddCommand(
		catalogCmd(a),
		cartCmd(a),
		couponCmd(a),
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		addressCmd(a),
		paymentCmd(a),
		wishlistCmd(a),
		checkoutCmd(a),
		ordersCmd(a),
		serveCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// openShop loads the storefront state from the configured backend. The
// returned closer releases the backend.
func (a *app) openShop(ctx context.Context, m *metrics.ShopMetrics) (*shop.Shop, func() error, error) {
	gw, err := storage.Open(ctx, a.cfg.StorageOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	policy, err := a.cfg.PricingPolicy()
	if err != nil {
		gw.Close()
		return nil, nil, err
	}
	delay := a.cfg.Checkout.Delay
	s, err := shop.Open(ctx, gw, catalog.Default(), shop.Options{
		Policy:        &policy,
		CheckoutDelay: &delay,
		Logger:        a.logger,
		Metrics:       m,
	})
	if err != nil {
		gw.Close()
		return nil, nil, err
	}
	return s, gw.Close, nil
}

// handler returns where commands are sent: the remote server when
// --remote is set, otherwise an in-process server over local state.
func (a *app) handler(ctx context.Context) (server.Handler, func() error, error) {
	if a.remote != "" {
		c, err := server.Dial(a.remote)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to %s: %w", a.remote, err)
		}
		return c, c.Close, nil
	}
	s, closer, err := a.openShop(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	return server.New(s, a.logger, nil), closer, nil
}

// do runs one command and prints the response as JSON.
func (a *app) do(cmd *cobra.Command, command string, fields map[string]any) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	h, closer, err := a.handler(ctx)
	if err != nil {
		return err
	}
	defer closer()

	req, err := server.Command(command, fields)
	if err != nil {
		return err
	}
	resp, err := h.Handle(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), resp)
}

func printJSON(w io.Writer, resp *structpb.Struct) error {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
