package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nill-home/face-insight/internal/config"
	"github.com/nill-home/face-insight/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the query API server",
	Long: `Start the Face Insight HTTP API.
The API answers similarity and metadata queries over the capture corpus:
unknown faces, photos of known persons, photo-based search and statistics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
	serveCmd.Flags().Bool("build-index", false, "Build the similarity index on startup")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (string, int) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return host, port
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	fmt.Printf("Connecting to PostgreSQL database...\n")
	svc, pool, err := setupService(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if mustGetBool(cmd, "build-index") {
		fmt.Printf("Building in-memory similarity index...\n")
		indexed, err := svc.RebuildIndex(ctx)
		if err != nil {
			fmt.Printf("Warning: failed to build similarity index: %v\n", err)
			fmt.Printf("Ranked search will scan the full corpus (slower)\n")
		} else {
			fmt.Printf("Similarity index built with %d observations\n", indexed)
		}
	}

	host, port := resolveServeHostPort(cmd)
	server := web.NewServer(cfg, host, port, svc)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Face Insight API on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
