package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"editoria/pkg/config"
	"editoria/pkg/db"
	"editoria/pkg/server"
	"editoria/pkg/server/endpoints"
	"editoria/pkg/session"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Editoria application server",
	Long: `Run the Editoria application server.

Requires the DATABASE_URL environment variable. Listen address and session
settings come from the configuration file and EDITORIA_* environment
variables (see "editoriactl configuration show").

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Fail fast on missing connection string
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		gormDB, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to get DB handle:", err)
			os.Exit(1)
		}

		sessions := session.NewManager(cfg, sqlDB)

		addr, _ := cmd.Flags().GetString("bind-address")
		if addr == "" {
			addr = cfg.Addr()
		}
		s := server.NewServer(gormDB, sessions, cfg, addr)

		endpoints.RegisterAll(s)

		// Reload configuration when the config file changes
		stopWatch := make(chan struct{})
		if watch, _ := cmd.Flags().GetBool("watch-config"); watch {
			go func() {
				if err := config.Watch(stopWatch); err != nil {
					log.Printf("Configuration watch stopped: %v", err)
				}
			}()
		}

		errs := make(chan error, 1)
		go func() {
			log.Printf("Running server at http://%s...\n", addr)
			errs <- s.Start()
		}()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errs:
			log.Fatal(err)
		case sig := <-sigs:
			log.Printf("Received %s, shutting down...", sig)
		}

		close(stopWatch)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("Closing DB pool: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("bind-address", "b", "", "listen address (host:port, overrides configuration)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("watch-config", false, "reload configuration when the config file changes")
}
