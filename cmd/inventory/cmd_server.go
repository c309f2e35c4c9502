package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goldenhive/inventory/app/metrics"
	"github.com/goldenhive/inventory/app/products"
	"github.com/goldenhive/inventory/app/server"
	"github.com/goldenhive/inventory/config"
	"github.com/goldenhive/inventory/database"
	"github.com/goldenhive/inventory/logger"
	"github.com/goldenhive/inventory/models"
)

// inventory serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("closing database", "error", err)
		}
	}()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	if cfg.SeedOnStart {
		if _, err := database.Seed(ctx, db, log); err != nil {
			return err
		}
	}

	m := metrics.New()
	service := products.NewService(models.NewProductsRepository(db), products.WithRecorder(m))

	router := server.NewRouter(server.Options{
		Products: service,
		Metrics:  m,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		Logger:               log,
		CORS:                 corsOptions(cfg),
		MaxBodyBytes:         cfg.MaxBodyBytes,
		ExposeInternalErrors: cfg.ExposeInternalErrors,
	})

	return server.New(cfg, router, log).Run(ctx)
}

func corsOptions(cfg *config.Config) server.CORSOptions {
	opts := server.DefaultCORSOptions()
	if len(cfg.CORSOrigins) > 0 {
		opts.AllowedOrigins = cfg.CORSOrigins
	}
	return opts
}

// inventory routes
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List every registered route",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := server.NewRouter(server.Options{
			Metrics: metrics.New(),
			Logger:  logger.Discard(),
			CORS:    server.DefaultCORSOptions(),
		})

		infos, err := server.Routes(r)
		if err != nil {
			return err
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Pattern != infos[j].Pattern {
				return infos[i].Pattern < infos[j].Pattern
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		fmt.Fprintln(w, "------\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\n", ri.Method, ri.Pattern)
		}
		return w.Flush()
	},
}
