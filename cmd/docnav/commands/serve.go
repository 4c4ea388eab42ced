package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/server"
	"git.home.luguber.info/inful/docnav/internal/server/handlers"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr  string `help:"Listen address (overrides server.addr)"`
	Watch bool   `short:"w" help:"Rebuild the navigation when the configuration changes"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(reg)

	loader, initial, err := loadSite(g, root, recorder)
	if err != nil {
		return err
	}

	addr := s.Addr
	if addr == "" {
		addr = initial.Config.Server.Addr
	}

	var source handlers.SiteSource = handlers.Static{Site: initial}
	var w *watch.Watcher
	if s.Watch {
		w = watch.New(loader, initial, watch.WithLogger(g.Logger))
		source = w
	}

	srv := server.New(source, server.Options{
		Addr:        addr,
		MetricsPath: initial.Config.Server.MetricsPath,
		Recorder:    recorder,
		Metrics:     metrics.HTTPHandler(reg),
		Logger:      g.Logger,
	})

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return srv.Run(ctx) })
	if w != nil {
		eg.Go(func() error { return w.Run(ctx) })
	}
	return eg.Wait()
}
