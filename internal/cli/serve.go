package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/internal/server"
)

const shutdownTimeout = 10 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr            string
		allowAllOrigins bool
		noCache         bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the viewer API over HTTP",
		Long: `Start the HTTP API. Clients upload documents with POST /documents and
then page, search, toggle and render them by id. Documents are kept in
memory; the least recently used is dropped when the store is full.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if addr == "" {
				addr = cfg.Server.Addr
			}
			store := c.newCache(noCache)
			defer store.Close()

			srv := server.New(server.Options{
				Addr:            addr,
				AllowAllOrigins: allowAllOrigins,
				AllowedOrigins:  cfg.Server.AllowedOrigins,
				MaxDocuments:    cfg.Server.MaxDocuments,
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				RateLimit:       cfg.Server.RateLimit,
				RateBurst:       cfg.Server.RateBurst,
				Viewer:          c.viewerOptions(),
				Cache:           store,
				Logger:          c.Logger,
			})
			return c.runServer(cmd.Context(), srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().BoolVar(&allowAllOrigins, "allow-all-origins", false, "allow cross-origin requests from any origin")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// runServer blocks until the server fails or ctx ends, then drains open
// requests.
func (c *CLI) runServer(ctx context.Context, srv *server.Server) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
