package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/kirill/internal/db/dbopen"
	"github.com/jusunglee/kirill/internal/db/postgres"
	"github.com/jusunglee/kirill/internal/health"
	"github.com/jusunglee/kirill/internal/logger"
	"github.com/jusunglee/kirill/internal/retention"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("kirill-worker")
	var (
		databaseURL = fs.StringLong("database-url", "sqlite://kirill.db", "sqlite:// or postgres:// URL for conversion history")
		interval    = fs.DurationLong("interval", 1*time.Hour, "Time between cleanup cycles")
		retain      = fs.DurationLong("retention", 30*24*time.Hour, "Delete history older than this")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *retain <= 0 {
		return errors.New("retention must be positive")
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	log := logger.New()

	repo, err := dbopen.Open(ctx, *databaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer repo.Close()

	hs := health.New(9090, nil)
	go func() {
		log.InfoContext(ctx, "starting metrics server", "addr", ":9090")
		if err := hs.Start(); err != nil {
			log.ErrorContext(ctx, "metrics server error", "error", err)
		}
	}()
	defer hs.Shutdown(context.Background())

	if pg, ok := repo.(*postgres.Repository); ok {
		go pg.ExportPoolStats(ctx, 15*time.Second)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("received signal, shutting down", "signal", sig)
		cancel(errors.New("signal received"))
	}()

	log.InfoContext(ctx, "worker starting", "interval", *interval, "retention", *retain)
	retention.New(repo, log, *retain).Run(ctx, *interval)
	log.Info("worker stopped")
	return nil
}
