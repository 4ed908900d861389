package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/puchicavos/website/internal/images"
	"github.com/puchicavos/website/internal/server"
	"github.com/puchicavos/website/internal/site"
	"github.com/puchicavos/website/internal/vitals"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site live with images resolved on every request",
	Long: `Starts an HTTP server over the site directory. Pages are synchronized
with the image catalog on each request, so edits show up on reload. The
image catalog is available under /api/images and page vitals are accepted
at /api/vitals.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().String("mode", "", "image mode: remote or local (overrides config)")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	mode, _ := cmd.Flags().GetString("mode")
	reg, err := buildRegistry(cfg, mode)
	if err != nil {
		return err
	}
	sync, err := buildSynchronizer(cfg, reg, logger)
	if err != nil {
		return err
	}
	handler, err := site.NewHandler(cfg.SiteDir, cfg.Exclude, sync, logger)
	if err != nil {
		return err
	}

	port := cfg.Port
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		port = p
	}

	srv := server.New(server.Config{Port: port, AllowAll: cfg.CORSAllowAll}, logger)
	images.RegisterRoutes(srv.Router(), reg)
	vitals.RegisterRoutes(srv.Router(), vitals.NewMonitor(logger))
	site.RegisterRoutes(srv.Router(), handler)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d", port)
	fmt.Fprintf(os.Stderr, "puchicavos %s serving %s at %s (%s images)\n", Version, cfg.SiteDir, url, reg.Mode())
	if open, _ := cmd.Flags().GetBool("open"); open {
		openBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
