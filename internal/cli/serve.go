package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/proofmap/proofmap/internal/pipeline"
	"github.com/proofmap/proofmap/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveRPS  float64
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve proof analysis over a JSON HTTP API",
	Long: `Serve starts a small HTTP server exposing the analyzer:

  POST /analyze  {"text": "<latex proof>"}  -> analysis result
  GET  /healthz                             -> liveness check

Requests are rate limited per client address. The server shuts down
cleanly on SIGINT/SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :7860)")
	serveCmd.Flags().Float64Var(&serveRPS, "rps", 0, "requests per second per client (0 = default)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveRPS > 0 {
		cfg.Server.RequestsPerSecond = serveRPS
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg)
	srv := server.New(p, cfg.Server)

	fmt.Fprintf(os.Stderr, "proofmap listening on %s\n", cfg.Server.Addr)
	return srv.ListenAndServe(ctx)
}
