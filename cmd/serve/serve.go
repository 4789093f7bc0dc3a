// Package serve runs the HTTP server
package serve

import (
	"fmt"
	"os/signal"
	"syscall"

	"kharcha/expense-nlp/cmd/common"
	"kharcha/expense-nlp/cmd/root"
	"kharcha/expense-nlp/internal/server"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parser over HTTP",
	Long: `Serve POST /parse, POST /chat, GET /health and GET /metrics.
The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from server.addr)")
}

func serveFunc(cmd *cobra.Command, _ []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("application not initialized")
	}

	cfg := c.GetConfig()
	opts := server.Options{Addr: cfg.Server.Addr, AllowedOrigins: cfg.Server.AllowedOrigins}
	if addr != "" {
		opts.Addr = addr
	}

	ctx, stop := signal.NotifyContext(common.Context(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(c.GetService(), opts, c.GetLogger()).Run(ctx)
}
