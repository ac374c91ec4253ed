package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/huangsam/doralens/internal/contract"
	"github.com/huangsam/doralens/internal/ghclient"
	"github.com/huangsam/doralens/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd runs the HTTP and WebSocket dashboard server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve metrics over HTTP and a live WebSocket dashboard",
	Long: `Start an HTTP server exposing the metrics endpoints:

  GET /api/github-metrics   30-day aggregate metrics
  GET /api/contributors     per-contributor metrics (?days=N)
  GET /api/trends           weekly trends (?weeks=N)
  GET /metrics              Prometheus exposition of the 30-day summary
  GET /health               liveness
  GET /ws/dashboard         WebSocket for live dashboard updates

The server drains in-flight requests on SIGINT or SIGTERM.

Examples:
  # Serve on a custom port and reload .doralens.yaml on change
  doralens serve --addr :9090 --watch`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg, newClient(cfg))
		if cfg.Watch {
			watchConfig(srv)
		}
		return srv.ListenAndServe(ctx, cfg.Addr)
	},
}

// watchConfig re-validates the config file on every change and swaps it
// into the running server. An invalid file keeps the previous config.
func watchConfig(srv *server.Server) {
	log := contract.Logger("serve")
	if viper.ConfigFileUsed() == "" {
		log.Warn("No config file found, --watch has nothing to watch")
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		next, err := loadConfig(&contract.ConfigRawInput{}, time.Now())
		if err != nil {
			contract.LogWarn("Ignoring invalid change to "+e.Name, err)
			return
		}
		client, err := ghclient.NewFromConfig(next)
		if err != nil {
			contract.LogWarn("Ignoring change to "+e.Name+" with unusable client settings", err)
			return
		}
		// Listen address changes need a restart.
		next.Addr = cfg.Addr
		srv.Swap(next, client)
		log.WithField("file", e.Name).Info("Reloaded config")
	})
	viper.WatchConfig()
	log.WithField("file", viper.ConfigFileUsed()).Info("Watching config file")
}
