package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcallister/backdesk/pkg/config"
	"github.com/jcallister/backdesk/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loadedFrom, err := loadConfig()
		if err != nil {
			return err
		}
		if loadedFrom != "" {
			log.Printf("INFO: Loaded config from %s", loadedFrom)
		} else {
			log.Printf("INFO: No config file found, using defaults")
		}

		srv, err := server.NewServer(cfg)
		if err != nil {
			return err
		}
		defer srv.Close()

		// Restore the document store from its last snapshot
		srv.LoadDocs()

		httpServer := &http.Server{
			Addr:    ":" + strconv.Itoa(cfg.Server.Port),
			Handler: srv.Router(),
		}

		go func() {
			log.Printf("Starting backdesk server on :%d", cfg.Server.Port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server failed to start: %v", err)
			}
		}()

		// Wait for interrupt signal to gracefully shutdown the server
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		// Snapshot the document store before shutdown
		srv.SaveDocs()

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Fatal("Server forced to shutdown:", err)
		}

		log.Println("Server exited")
		return nil
	},
}

// loadConfig honors the --config flag before the usual lookup order.
func loadConfig() (*config.Config, string, error) {
	if configFile != "" {
		return config.LoadFromPath(configFile)
	}
	return config.Load()
}
