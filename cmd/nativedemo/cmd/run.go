package cmd

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/native/pkg/config"
	"github.com/go-drift/native/pkg/engine"
	"github.com/go-drift/native/pkg/errors"
	"github.com/go-drift/native/pkg/metrics"
	"github.com/go-drift/native/pkg/platform/headless"
	"github.com/go-drift/native/showcase"
)

type runOptions struct {
	*RootOptions
	watch       bool
	metricsAddr string
	debugPort   int
	timeout     time.Duration
	linger      time.Duration
}

// NewRunCommand runs one demo through its scripted session.
func NewRunCommand(root *RootOptions) *cobra.Command {
	opts := &runOptions{RootOptions: root}

	cmd := &cobra.Command{
		Use:   "run <demo>",
		Short: "Run a demo through its scripted session",
		Long: `Run builds the demo on the headless platform, plays its scripted session
(presses, typing, resizing, closing) and prints the last native widget tree.

Settings come from native.yaml; flags override them.`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			var names []string
			for _, d := range showcase.Demos() {
				names = append(names, d.Name+"\t"+d.Subtitle)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runDemo(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the log level when native.yaml changes")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().IntVar(&opts.debugPort, "debug-port", 0, "serve loop state over HTTP on this port")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "give up if the session has not finished")
	cmd.Flags().DurationVar(&opts.linger, "linger", 0, "keep the metrics and debug servers up after the session")

	return cmd
}

// NewListCommand lists the demos.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range showcase.Demos() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.Title, d.Subtitle)
			}
			return w.Flush()
		},
	}
}

// loadConfig reads the file at path, or native.yaml in the enclosing module
// when path is empty. It returns the path to watch, if any.
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		return cfg, path, err
	}
	root, err := config.FindProjectRoot(".")
	if err != nil {
		return &config.Config{}, "", nil
	}
	r, err := config.Resolve(root)
	if err != nil {
		return nil, "", err
	}
	return &r.Config, filepath.Join(root, config.FileName), nil
}

func runDemo(ctx context.Context, stdout, stderr io.Writer, name string, opts *runOptions) error {
	demo, err := showcase.Lookup(name)
	if err != nil {
		return err
	}
	cfg, cfgPath, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	var level slog.LevelVar
	setLevel := func(c *config.Config) {
		level.Set(c.Log.SlogLevel())
		if opts.Verbose {
			level.Set(slog.LevelDebug)
		}
	}
	setLevel(cfg)
	logger := slog.New(cfg.Log.Handler(stderr, &level))
	errors.SetHandler(&errors.LogHandler{Logger: logger})
	defer errors.SetHandler(nil)

	p := headless.New(
		headless.WithLogger(logger),
		headless.WithWindowSize(uint32(cfg.Window.Width), uint32(cfg.Window.Height)),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	rec := metrics.New(reg)

	var tree strings.Builder
	engineOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithMetrics(rec),
		engine.WithConfig(cfg),
		engine.WithIdle(func() {
			tree.Reset()
			if err := p.Dump(&tree); err != nil {
				logger.Warn("dump failed", "err", err)
			}
		}),
	}

	if port := cmp.Or(opts.debugPort, cfg.Engine.DebugPort); port != 0 {
		srv := engine.NewDebugServer(reg, logger)
		bound, err := srv.Start(port)
		if err != nil {
			return err
		}
		defer srv.Stop()
		logger.Info("debug server listening", "port", bound)
		engineOpts = append(engineOpts, engine.WithDebugServer(srv))
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout+opts.linger)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	// session ends when the demo stops; the helpers below follow it.
	session, endSession := context.WithCancel(gctx)
	defer endSession()

	title := cmp.Or(cfg.Window.Title, demo.Title)
	g.Go(func() error {
		defer endSession()
		return demo.Run(gctx, p, title, engineOpts...)
	})
	g.Go(func() error { return demo.Script(gctx, p) })

	if addr := cmp.Or(opts.metricsAddr, cfg.Metrics.Addr); addr != "" {
		g.Go(func() error { return serveMetrics(lingering(session, opts.linger), addr, reg, logger) })
	}
	if opts.watch && cfgPath != "" {
		g.Go(func() error {
			return config.Watch(session, cfgPath, logger, func(c *config.Config) {
				setLevel(c)
				logger.Info("log level updated", "level", level.Level())
			})
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("demo %s: %w", demo.Name, err)
	}
	_, err = io.WriteString(stdout, tree.String())
	return err
}

// lingering returns a context that ends d after ctx does.
func lingering(ctx context.Context, d time.Duration) context.Context {
	if d <= 0 {
		return ctx
	}
	out, cancel := context.WithCancel(context.WithoutCancel(ctx))
	go func() {
		<-ctx.Done()
		time.Sleep(d)
		cancel()
	}()
	return out
}

// serveMetrics serves reg on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("serving metrics", "addr", addr)

	select {
	case err := <-errc:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
