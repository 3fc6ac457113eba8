package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/patchwork/internal/config"
	perrors "github.com/vango-dev/patchwork/internal/errors"
	"github.com/vango-dev/patchwork/internal/watch"
	"github.com/vango-dev/patchwork/pkg/dom"
	"github.com/vango-dev/patchwork/pkg/server"
	"github.com/vango-dev/patchwork/pkg/updater"
)

type serveOptions struct {
	configDir string
	host      string
	port      int
	watch     bool
	title     string
	client    string
	verbose   bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve VIEW",
		Short: "Serve a view and stream its patches",
		Long: `Serve VIEW as an HTML page and stream its changes over WebSocket.

With --watch the view file is reloaded whenever it changes; every
reload is diffed against the previous view and the patches are sent
to connected clients.

Server, metrics and tracing settings come from patchwork.json in the
--config directory; flags override them.

Examples:
  patchwork serve view.yaml --watch
  patchwork serve view.html --port=8080 --client=dist/client.js`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configDir, "config", "c", ".", "Directory containing patchwork.json")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from patchwork.json)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from patchwork.json)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload the view when the file changes")
	cmd.Flags().StringVar(&opts.title, "title", "Patchwork", "Page title")
	cmd.Flags().StringVar(&opts.client, "client", "", "Browser client script to serve")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every update")

	return cmd
}

func runServe(path string, opts serveOptions) error {
	cfg, err := config.LoadOrDefault(opts.configDir)
	if err != nil {
		return err
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	view, err := loadView(path)
	if err != nil {
		return err
	}

	var clientJS []byte
	if opts.client != "" {
		if clientJS, err = os.ReadFile(opts.client); err != nil {
			return perrors.New("E141").Wrap(err).WithDetailf("%s could not be read.", opts.client)
		}
	}

	logger := newLogger(os.Stderr, opts.verbose)

	reg := prometheus.NewRegistry()
	uopts := []updater.Option{
		updater.WithLogger(logger),
		updater.WithHistorySize(cfg.Server.HistorySize),
		updater.WithNamespace(cfg.Metrics.Namespace),
		updater.WithTracerName(cfg.Tracing.TracerName),
	}
	if cfg.MetricsEnabled() {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		uopts = append(uopts, updater.WithRegistry(reg))
	}
	u := updater.New(view, dom.New(view), uopts...)

	srv := server.New(u,
		server.WithLogger(logger),
		server.WithWriteTimeout(cfg.WriteTimeout()),
		server.WithGatherer(reg),
		server.WithTitle(opts.title),
		server.WithClientScript(clientJS),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		w, err := watch.New(watch.Config{Files: []string{path}, Logger: logger})
		if err != nil {
			return err
		}
		w.OnChange(func(changed string) {
			reload(ctx, u, changed)
		})
		go func() {
			if err := w.Run(ctx); err != nil {
				warn("Watching %s stopped: %v", path, err)
			}
		}()
	}

	success("Serving %s at %s", path, cfg.URL())
	if opts.watch {
		info("Watching %s for changes", path)
	}
	return srv.ListenAndServe(ctx, cfg.Address())
}

// reload loads the changed view and pushes it through the updater. A view
// that fails to parse is skipped; the previous one stays live.
func reload(ctx context.Context, u *updater.Updater, path string) {
	next, err := loadView(path)
	if err != nil {
		warn("Reload of %s skipped", path)
		perrors.PrintError(err)
		return
	}
	seq, patches, err := u.Update(ctx, next)
	if err != nil {
		perrors.PrintError(perrors.FromApply(err))
		return
	}
	if len(patches) == 0 {
		info("%s changed, view unchanged", path)
		return
	}
	success("Update %d: %d patches", seq, len(patches))
}
