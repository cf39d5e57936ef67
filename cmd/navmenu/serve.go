package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/navmenu/pkg/logger"
	"github.com/mchmarny/navmenu/pkg/metric"
	"github.com/mchmarny/navmenu/pkg/server"
	"github.com/mchmarny/navmenu/pkg/site"
	"github.com/mchmarny/navmenu/pkg/source"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pages and the menu API, reloading the item file on change",
		Long: `The serve command renders an HTML page with the navigation menu for every
request path, serves the rendered menu as JSON at /api/menu?route=<path>,
and exposes /healthz, /readyz and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", server.DefaultPort, "port to serve on (overrides config)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	slog.Info("starting navmenu", "commit", commit, "date", date, "menu_file", a.cfg.MenuFile)

	reg := prometheus.NewRegistry()
	counters := metric.NewCounters(reg)

	items := source.NewFile(a.cfg.MenuFile, source.WithReloadCounter(counters.SourceReloads))
	if err := items.Reload(); err != nil {
		return fmt.Errorf("initial menu load failed: %w", err)
	}

	s := site.New(items,
		site.WithConfigure(a.cfg.Menu.Apply),
		site.WithCounters(counters))

	opts := append(a.cfg.ServerOptions(),
		server.WithErrorLog(logger.NewLogLogger(slog.LevelError)),
		server.WithRegistry(reg),
		server.WithPrometheusMetrics(),
		server.WithSimpleHealth(),
		server.WithReadiness(items),
		server.WithHandler("/api/menu", s.MenuHandler()),
		server.WithHandler("/", s.PageHandler()),
	)
	srv := server.New(opts...)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Serve(gCtx)
	})

	if a.cfg.Watch {
		g.Go(func() error {
			return items.Watch(gCtx, source.DefaultDebounce)
		})
	}

	return g.Wait()
}
