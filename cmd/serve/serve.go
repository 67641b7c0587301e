// Package serve implements the serve command
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/camt-recon/cmd/root"
	"fjacquet/camt-recon/internal/container"
	"fjacquet/camt-recon/internal/report"
	"fjacquet/camt-recon/internal/server"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reconciliation HTTP API",
	Long: `Serve the reconciliation HTTP API.

  GET  /healthz            liveness probe
  POST /api/v1/reconcile   multipart upload of "statement" and "ledger"

The reconcile endpoint accepts the optional form fields amount_tolerance,
date_tolerance_days and format (csv, xlsx or summary).`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
}

// NewServer builds the HTTP server from the application container
func NewServer(c *container.Container) *server.Server {
	cfg := c.GetConfig()
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		format = report.FormatCSV
	}
	return server.New(c.GetPipeline(), c.GetLogger(), server.Options{
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Tolerance:      c.GetEngine().Tolerance(),
		Format:         format,
	})
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	listen := c.GetConfig().Server.Addr
	if cmd.Flags().Changed("addr") {
		listen = addr
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewServer(c).ListenAndServe(ctx, listen)
}
