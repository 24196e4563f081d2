package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Renu-telugu/user-management-app/internal/config"
	"github.com/Renu-telugu/user-management-app/internal/database"
	"github.com/Renu-telugu/user-management-app/internal/logging"
	"github.com/Renu-telugu/user-management-app/internal/users"
	"github.com/Renu-telugu/user-management-app/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	port        int
	bind        string
	configPath  string
	logFilePath string
	verbosity   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "user-management-app",
		Short: "User management web application",
		Long:  `A web application for managing user accounts backed by MySQL, with credential-confirmed updates and deletes.`,
		RunE:  run,
	}

	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (overrides config and PORT env var)")
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file (default ./config.json if present)")
	rootCmd.Flags().StringVar(&logFilePath, "log-file", "", "Path to the rotating log file")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("user-management-app %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logging.Setup(verbosity, logFilePath)

	if bind != "" {
		if ip := net.ParseIP(bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", bind)
		}
	}

	path := configPath
	explicit := path != ""
	if !explicit {
		path = "config.json"
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.App.Port = port
	}
	cfg.LogSummary()

	log.Info().
		Str("version", version).
		Int("port", cfg.App.Port).
		Str("bind", bind).
		Msg("Starting user management app")

	db, err := database.Open(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	svc := users.NewService(db)
	server := web.NewServer(svc, cfg.App.Port, bind, cfg.App.Name)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	select {
	case err := <-db.Fatal():
		log.Fatal().Err(err).Msg("Unrecoverable database error")
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}

	log.Info().Msg("User management app stopped")
	return nil
}
