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

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/jusunglee/kirill/internal/bot"
	"github.com/jusunglee/kirill/internal/envsetup"
	"github.com/jusunglee/kirill/internal/health"
	"github.com/jusunglee/kirill/internal/logger"
	"github.com/jusunglee/kirill/internal/transliteration"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	if envsetup.NeedsSetup(envsetup.DefaultPath) && os.Getenv("DISCORD_TOKEN") == "" && len(os.Args) == 1 {
		ok, err := envsetup.Run(envsetup.DefaultPath)
		if err != nil {
			return fmt.Errorf("running setup wizard: %w", err)
		}
		if !ok {
			return errors.New("setup cancelled")
		}
	}
	_ = godotenv.Load()

	fs := ff.NewFlagSet("kirill-bot")
	var (
		discordToken = fs.StringLong("discord-token", "", "Discord bot token")
		guildID      = fs.StringLong("guild-id", "", "Register commands to one guild instead of globally")
		lexiconPath  = fs.StringLong("lexicon", "", "YAML file of extra exception words")
		healthPort   = fs.Int64Long("health-port", 8081, "Port for the health and metrics server")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *discordToken == "" {
		return errors.New("discord-token is required")
	}

	log := logger.New()

	engine, err := transliteration.LoadEngine(*lexiconPath)
	if err != nil {
		return err
	}

	dg, err := discordgo.New("Bot " + *discordToken)
	if err != nil {
		return fmt.Errorf("creating Discord session: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bot.New(log, bot.NewDiscordSession(dg), engine, bot.Config{GuildID: *guildID})

	hs := health.New(int(*healthPort), b.Ready)
	go func() {
		log.InfoContext(ctx, "starting health server", "port", *healthPort)
		if err := hs.Start(); err != nil {
			log.ErrorContext(ctx, "health server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hs.Shutdown(shutdownCtx)
	}()

	return b.Run(ctx)
}
