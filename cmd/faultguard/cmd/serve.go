package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RocketLaunchpad/faultguard/internal/httpapi"
)

var (
	serveListenAddr string
	serveRecentSize int
	serveEnableDemo bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the faultguard ops server",
	Long: `Starts the operational HTTP server: /health, /metrics in Prometheus
format, /faults with recent intercepted faults, and (with --demo) fault
injection endpoints for exercising the interception path end to end.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListenAddr, "listen", "", "listen address (default from config or :8085)")
	serveCmd.Flags().IntVar(&serveRecentSize, "recent", 0, "recent-fault buffer size (default from config or 50)")
	serveCmd.Flags().BoolVar(&serveEnableDemo, "demo", false, "enable /demo fault-injection endpoints")
}

func runServe(cmd *cobra.Command, args []string) error {
	listen := serveListenAddr
	if listen == "" {
		listen = viper.GetString("listen_addr")
	}
	if listen == "" {
		listen = ":8085"
	}

	recent := serveRecentSize
	if recent == 0 {
		recent = viper.GetInt("recent_size")
	}
	if recent <= 0 {
		recent = 50
	}

	srv := httpapi.New(httpapi.Config{
		Addr:       listen,
		RecentSize: recent,
		EnableDemo: serveEnableDemo,
	})

	// Shut down cleanly on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
